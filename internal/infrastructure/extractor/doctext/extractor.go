// Package doctext assembles the raw text the parsers run on, combining the
// PDF text layer, page rasterization and OCR behind one extractor.
package doctext

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Stratos359/Company-App/internal/core/ports"
)

const (
	payrollLang = "ell+eng"
	invoiceLang = "ell"

	defaultMinTextLayerChars = 20
	defaultHeaderCropPx      = 120
)

type Config struct {
	// MinTextLayerChars is the trimmed length under which the text layer is
	// treated as absent and OCR kicks in.
	MinTextLayerChars int
	// HeaderCropPx is the height of the top band OCR'd separately on
	// invoices to bias vendor detection.
	HeaderCropPx int
}

type Extractor struct {
	textLayer ports.TextLayerReader
	renderer  ports.PageRenderer
	ocr       ports.OCREngine
	cfg       Config
	logger    *slog.Logger
}

func New(textLayer ports.TextLayerReader, renderer ports.PageRenderer, ocr ports.OCREngine, cfg Config, logger *slog.Logger) *Extractor {
	if cfg.MinTextLayerChars <= 0 {
		cfg.MinTextLayerChars = defaultMinTextLayerChars
	}
	if cfg.HeaderCropPx <= 0 {
		cfg.HeaderCropPx = defaultHeaderCropPx
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{textLayer: textLayer, renderer: renderer, ocr: ocr, cfg: cfg, logger: logger}
}

// PayrollPages rasterizes and OCRs every page. Payroll source PDFs are
// scanned, so the text layer is never tried. An OCR failure aborts the
// document.
func (e *Extractor) PayrollPages(ctx context.Context, pdfData []byte) ([]string, error) {
	images, err := e.renderer.RenderPages(ctx, pdfData)
	if err != nil {
		return nil, fmt.Errorf("render payroll pages: %w", err)
	}

	pages := make([]string, 0, len(images))
	for i, img := range images {
		text, err := e.ocr.Recognize(ctx, img, payrollLang)
		if err != nil {
			return nil, fmt.Errorf("ocr payroll page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// InvoiceText prefers the embedded text layer. When extraction fails or the
// trimmed result is shorter than MinTextLayerChars, every page is
// rasterized and OCR'd twice: a cropped top header band first, then the
// full page, both appended.
func (e *Extractor) InvoiceText(ctx context.Context, pdfData []byte) (string, error) {
	if pages, err := e.textLayer.TextLayer(ctx, pdfData); err == nil {
		joined := strings.Join(pages, "")
		if utf8.RuneCountInString(strings.TrimSpace(joined)) >= e.cfg.MinTextLayerChars {
			return joined, nil
		}
	} else {
		e.logger.Debug("text layer unavailable, falling back to ocr", "error", err)
	}

	images, err := e.renderer.RenderPages(ctx, pdfData)
	if err != nil {
		return "", fmt.Errorf("render invoice pages: %w", err)
	}

	var b strings.Builder
	for i, img := range images {
		if header := headerBand(img, e.cfg.HeaderCropPx); header != nil {
			text, err := e.ocr.Recognize(ctx, header, invoiceLang)
			if err != nil {
				return "", fmt.Errorf("ocr invoice header %d: %w", i+1, err)
			}
			b.WriteString(text)
		}
		text, err := e.ocr.Recognize(ctx, img, invoiceLang)
		if err != nil {
			return "", fmt.Errorf("ocr invoice page %d: %w", i+1, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

type subImager interface {
	SubImage(image.Rectangle) image.Image
}

func headerBand(img image.Image, heightPx int) image.Image {
	bounds := img.Bounds()
	if bounds.Dy() <= heightPx {
		return nil
	}
	si, ok := img.(subImager)
	if !ok {
		return nil
	}
	return si.SubImage(image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+heightPx))
}
