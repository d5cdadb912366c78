// Package pagerender rasterizes PDF pages via MuPDF.
package pagerender

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

const defaultDPI = 300

type Renderer struct {
	dpi int
}

func New(dpi int) *Renderer {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &Renderer{dpi: dpi}
}

// RenderPages rasterizes every page, preserving page order.
func (r *Renderer) RenderPages(_ context.Context, pdfData []byte) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("open pdf for rendering: %w", err)
	}
	defer doc.Close()

	images := make([]image.Image, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, float64(r.dpi))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", n+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
