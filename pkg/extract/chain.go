package extract

import (
	"fmt"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/data"
)

// Extractor pulls card images out of a PDF payload and writes them to destDir
// as "<baseName>_p<N>.<ext>", returning the written paths in page order.
type Extractor interface {
	Name() string
	Extract(pdf []byte, destDir, baseName string) ([]string, error)
}

// Chain runs the primary extractor and falls back to a renderer when the
// primary fails or finds no images. The fallback can be disabled for testing.
type Chain struct {
	primary  Extractor
	fallback Extractor
}

// NewChain builds the default extraction chain: pdfcpu embedded-image
// extraction, with MuPDF page rendering as fallback. A nil fallback disables
// the second stage.
func NewChain(useFallback bool) *Chain {
	c := &Chain{primary: NewPDFCPUExtractor()}
	if useFallback {
		c.fallback = NewFitzExtractor(fallbackDPI)
	}
	return c
}

// NewChainWith wires explicit extractors, used by tests.
func NewChainWith(primary, fallback Extractor) *Chain {
	return &Chain{primary: primary, fallback: fallback}
}

// Extract applies the fallback chain to one PDF. On success via the primary
// the failure record is nil. On success via the fallback it carries the
// primary's error with UsedFallback set. When both stages fail the paths are
// empty and the record explains why the item was skipped.
func (c *Chain) Extract(pdf []byte, destDir, baseName string) ([]string, *data.FailedPDF) {
	paths, err := c.primary.Extract(pdf, destDir, baseName)
	if err == nil && len(paths) > 0 {
		return paths, nil
	}
	primaryErr := "no images found in PDF"
	if err != nil {
		primaryErr = err.Error()
	}

	if c.fallback == nil {
		return nil, &data.FailedPDF{Err: primaryErr}
	}

	paths, err = c.fallback.Extract(pdf, destDir, baseName)
	if err != nil {
		return nil, &data.FailedPDF{
			Err: fmt.Sprintf("%s: %s", c.fallback.Name(), err),
		}
	}
	return paths, &data.FailedPDF{Err: primaryErr, UsedFallback: true}
}
