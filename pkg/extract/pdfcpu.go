package extract

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfHeader = []byte("%PDF")

// PDFCPUExtractor extracts the largest embedded image of each page. Cards in
// the source PDFs are stored as one full-page image plus occasional small
// decoration objects, so the largest image per page is the card face.
type PDFCPUExtractor struct {
	conf *model.Configuration
}

func NewPDFCPUExtractor() *PDFCPUExtractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUExtractor{conf: conf}
}

func (e *PDFCPUExtractor) Name() string {
	return "pdfcpu"
}

func (e *PDFCPUExtractor) Extract(pdf []byte, destDir, baseName string) ([]string, error) {
	if !bytes.HasPrefix(pdf, pdfHeader) {
		return nil, fmt.Errorf("invalid PDF header: %q", truncateBytes(pdf, 10))
	}

	pages, err := api.ExtractImagesRaw(bytes.NewReader(pdf), nil, e.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	// The result carries one image map per page, already in page order.
	var paths []string
	for _, pageImages := range pages {
		path, err := e.writeMainImage(pageImages, destDir, baseName)
		if err != nil {
			return nil, err
		}
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// writeMainImage picks the largest image of one page and writes it out.
// Returns "" when the page carries no usable image.
func (e *PDFCPUExtractor) writeMainImage(pageImages map[int]model.Image, destDir, baseName string) (string, error) {
	var (
		best       []byte
		bestScore  int
		bestPageNr int
		bestType   string
	)
	for _, img := range pageImages {
		raw, err := io.ReadAll(img)
		if err != nil {
			return "", fmt.Errorf("failed to read embedded image: %w", err)
		}
		if len(raw) == 0 {
			continue
		}
		score := imageScore(raw)
		if score > bestScore {
			best = raw
			bestScore = score
			bestPageNr = img.PageNr
			bestType = img.FileType
		}
	}
	if best == nil {
		return "", nil
	}

	if bestType == "" {
		bestType = "png"
	}
	// PageNr is 1-based, filenames use 0-based page indices.
	name := fmt.Sprintf("%s_p%d.%s", baseName, bestPageNr-1, bestType)
	path := filepath.Join(destDir, name)
	if err := os.WriteFile(path, best, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// imageScore ranks candidate images by resolution, falling back to byte size
// when the payload is not decodable as-is (e.g. raw CCITT streams).
func imageScore(raw []byte) int {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err == nil && cfg.Width*cfg.Height > 0 {
		return cfg.Width * cfg.Height
	}
	return len(raw)
}

func truncateBytes(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
