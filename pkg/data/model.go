package data

// CardImage represents one extracted card image, ready for layout.
type CardImage struct {
	Source    string // ZIP file name, or "(direct)" for loose files
	Item      string // PDF or image name within the source
	Page      int    // 0-based page index within the PDF, 0 for plain images
	ImagePath string // path to the normalized image file
}

// FailedPDF records an item that could not be processed cleanly.
type FailedPDF struct {
	Source       string
	Item         string
	Err          string
	UsedFallback bool // the fallback renderer recovered the item
}

// BuildResult summarizes a completed build run.
type BuildResult struct {
	Cards      int
	Pages      int
	OutputPath string
	OutputSize int64
	Failures   []FailedPDF
}
