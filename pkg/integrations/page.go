package integrations

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	// imaging registers jpeg/png/gif/bmp/tiff decoders itself; webp is the
	// one card format it does not cover.
	_ "golang.org/x/image/webp"
)

// PageRenderer rasterizes one sheet at a fixed DPI: a white A4 canvas with
// up to Cols*Rows card images and cut marks at the page edges.
type PageRenderer struct {
	grid Grid
	dpi  float64
}

func NewPageRenderer(grid Grid, dpi float64) *PageRenderer {
	return &PageRenderer{grid: grid, dpi: dpi}
}

// px converts PDF points to raster pixels at the renderer's DPI.
func (r *PageRenderer) px(pt float64) int {
	return int(math.Round(pt * r.dpi / 72.0))
}

// rasterY converts a PDF y coordinate (origin bottom-left) to a raster row
// (origin top-left).
func (r *PageRenderer) rasterY(pt float64) int {
	return r.px(r.grid.PageH) - r.px(pt)
}

// Render composes the images of one sheet. The slice order follows the
// grid's slot order: index 0 lands in the bottom-left cell.
func (r *PageRenderer) Render(imagePaths []string) (*image.NRGBA, error) {
	if len(imagePaths) > r.grid.PerPage() {
		return nil, fmt.Errorf("too many images for one sheet: %d > %d", len(imagePaths), r.grid.PerPage())
	}

	canvas := imaging.New(r.px(r.grid.PageW), r.px(r.grid.PageH), color.White)

	for idx, path := range imagePaths {
		card, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open card image %s: %w", path, err)
		}

		cellX, cellY := r.grid.Cell(idx)
		fitted := r.fitCard(card)

		// Anchor at the cell's lower-left corner.
		x := r.px(cellX)
		y := r.rasterY(cellY) - fitted.Bounds().Dy()
		canvas = imaging.Paste(canvas, fitted, image.Pt(x, y))
	}

	r.drawCutMarks(canvas)
	return canvas, nil
}

// fitCard scales a card image into the cell, preserving aspect ratio.
func (r *PageRenderer) fitCard(card image.Image) *image.NRGBA {
	bounds := card.Bounds()
	w, h := FitRect(
		float64(bounds.Dx()), float64(bounds.Dy()),
		float64(r.px(r.grid.CardW)), float64(r.px(r.grid.CardH)),
	)
	dst := image.NewNRGBA(image.Rect(0, 0, int(math.Round(w)), int(math.Round(h))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), card, bounds, draw.Over, nil)
	return dst
}

// drawCutMarks paints the grid's cut guides as thin black lines.
func (r *PageRenderer) drawCutMarks(canvas *image.NRGBA) {
	black := color.NRGBA{A: 255}
	for _, s := range r.grid.CutMarks() {
		x1, x2 := r.px(s.X1), r.px(s.X2)
		y1, y2 := r.rasterY(s.Y1), r.rasterY(s.Y2)
		fillLine(canvas, x1, y1, x2, y2, black)
	}
}

// fillLine draws an axis-aligned 1px line, clamped to the canvas.
func fillLine(canvas *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	bounds := canvas.Bounds()
	for y := max(y1, bounds.Min.Y); y <= min(y2, bounds.Max.Y-1); y++ {
		for x := max(x1, bounds.Min.X); x <= min(x2, bounds.Max.X-1); x++ {
			canvas.SetNRGBA(x, y, c)
		}
	}
}
