package extract

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// fallbackDPI doubles the PDF's native 72 DPI, enough for print-quality
// card cells without ballooning the scratch directory.
const fallbackDPI = 144.0

// FitzExtractor renders whole PDF pages through MuPDF. It handles PDFs that
// pdfcpu rejects as corrupt, at the cost of rasterizing instead of pulling
// the embedded image.
type FitzExtractor struct {
	dpi float64
}

func NewFitzExtractor(dpi float64) *FitzExtractor {
	if dpi <= 0 {
		dpi = fallbackDPI
	}
	return &FitzExtractor{dpi: dpi}
}

func (e *FitzExtractor) Name() string {
	return "mupdf"
}

func (e *FitzExtractor) Extract(pdf []byte, destDir, baseName string) ([]string, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var paths []string
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, e.dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i, err)
		}

		path := filepath.Join(destDir, fmt.Sprintf("%s_p%d.png", baseName, i))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to encode page %d: %w", i, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
