// Package tesseract recognizes text on page images by driving the tesseract
// binary. The engine is deliberately thin: language selection is a caller
// concern and its failures propagate untouched, aborting the document.
package tesseract

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
)

type Config struct {
	Binary      string // binary name or absolute path; empty -> "tesseract"
	TessdataDir string
	TempDir     string // empty -> system temp
}

type Engine struct {
	cfg    Config
	runner Runner
}

func New(cfg Config) *Engine {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	return &Engine{cfg: cfg, runner: execRunner{}}
}

// NewWithRunner is for tests.
func NewWithRunner(cfg Config, runner Runner) *Engine {
	e := New(cfg)
	e.runner = runner
	return e
}

// Recognize writes the image to a temp PNG and runs
// tesseract <file> stdout -l <lang>.
func (e *Engine) Recognize(ctx context.Context, img image.Image, lang string) (string, error) {
	tmp, err := os.CreateTemp(e.cfg.TempDir, "ocr-page-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encode page image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp image: %w", err)
	}

	args := []string{tmp.Name(), "stdout", "-l", lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return string(out), nil
}
