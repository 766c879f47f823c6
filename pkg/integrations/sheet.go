package integrations

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/data"
)

// DefaultDPI is the raster density of composed sheets.
const DefaultDPI = 150.0

// SheetWriter paginates card images onto 3x3 sheets and assembles them into
// a single A4 PDF.
type SheetWriter struct {
	grid     Grid
	renderer *PageRenderer
}

func NewSheetWriter(dpi float64) *SheetWriter {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	grid := DefaultGrid()
	return &SheetWriter{grid: grid, renderer: NewPageRenderer(grid, dpi)}
}

// Grid exposes the writer's layout, mainly for page counting.
func (w *SheetWriter) Grid() Grid {
	return w.grid
}

// Write renders all sheets and writes the output PDF. Cards are placed in
// slice order, up to 9 per page. onPage, when non-nil, is called before each
// page is rendered with (1-based page, total pages).
func (w *SheetWriter) Write(cards []data.CardImage, outputPath string, onPage func(current, total int)) error {
	if len(cards) == 0 {
		return fmt.Errorf("no card images to lay out")
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	perPage := w.grid.PerPage()
	totalPages := w.grid.PageCount(len(cards))

	pages := make([]io.Reader, 0, totalPages)
	for i := 0; i < len(cards); i += perPage {
		if onPage != nil {
			onPage(i/perPage+1, totalPages)
		}

		group := cards[i:min(i+perPage, len(cards))]
		paths := make([]string, len(group))
		for j, card := range group {
			paths[j] = card.ImagePath
		}

		sheet, err := w.renderer.Render(paths)
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", i/perPage+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, sheet); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", i/perPage+1, err)
		}
		pages = append(pages, &buf)
	}

	imp, err := api.Import("f:A4, pos:full", types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to configure page import: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := api.ImportImages(nil, out, pages, imp, nil); err != nil {
		out.Close()
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return out.Close()
}
