package integrations

import "math"

// Page and card dimensions in PDF points (1 point = 1/72 inch).
const (
	PageWidthPt  = 595.28 // A4 portrait
	PageHeightPt = 841.89

	CardWidthPt  = 190.0
	CardHeightPt = 266.0

	GridCols = 3
	GridRows = 3

	CutMarkLengthPt = 12.0
)

// Grid describes the card layout of one sheet in PDF coordinates, with the
// origin at the bottom-left corner of the page.
type Grid struct {
	PageW, PageH float64
	CardW, CardH float64
	Cols, Rows   int
	MarkLen      float64
}

// DefaultGrid is the 3x3 card sheet centered on an A4 page.
func DefaultGrid() Grid {
	return Grid{
		PageW:   PageWidthPt,
		PageH:   PageHeightPt,
		CardW:   CardWidthPt,
		CardH:   CardHeightPt,
		Cols:    GridCols,
		Rows:    GridRows,
		MarkLen: CutMarkLengthPt,
	}
}

// OffsetX is the horizontal distance from the page edge to the grid.
func (g Grid) OffsetX() float64 {
	return (g.PageW - float64(g.Cols)*g.CardW) / 2.0
}

// OffsetY is the vertical distance from the page edge to the grid.
func (g Grid) OffsetY() float64 {
	return (g.PageH - float64(g.Rows)*g.CardH) / 2.0
}

// PerPage returns how many cards fit on one sheet.
func (g Grid) PerPage() int {
	return g.Cols * g.Rows
}

// PageCount returns how many sheets n cards require.
func (g Grid) PageCount(n int) int {
	return (n + g.PerPage() - 1) / g.PerPage()
}

// Cell returns the bottom-left corner of the cell for slot idx. Slot 0 is
// the bottom-left cell and slots fill left-to-right, then upward.
func (g Grid) Cell(idx int) (x, y float64) {
	row := idx / g.Cols
	col := idx % g.Cols
	return g.OffsetX() + float64(col)*g.CardW, g.OffsetY() + float64(row)*g.CardH
}

// Segment is one cut mark line in PDF coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// CutMarks returns the cut guides for the grid: short marks at the page
// edges aligned with every vertical and horizontal cutting line.
func (g Grid) CutMarks() []Segment {
	var marks []Segment

	for i := 0; i <= g.Cols; i++ {
		x := g.OffsetX() + float64(i)*g.CardW
		marks = append(marks,
			Segment{x, g.PageH, x, g.PageH - g.MarkLen}, // top
			Segment{x, 0, x, g.MarkLen},                 // bottom
		)
	}
	for i := 0; i <= g.Rows; i++ {
		y := g.OffsetY() + float64(i)*g.CardH
		marks = append(marks,
			Segment{0, y, g.MarkLen, y},                 // left
			Segment{g.PageW, y, g.PageW - g.MarkLen, y}, // right
		)
	}
	return marks
}

// FitRect scales an image of srcW x srcH to fit a box of boxW x boxH while
// preserving the aspect ratio. Images smaller than the box are scaled up.
func FitRect(srcW, srcH, boxW, boxH float64) (w, h float64) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	scale := math.Min(boxW/srcW, boxH/srcH)
	return srcW * scale, srcH * scale
}
