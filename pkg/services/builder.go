package services

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/data"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/extract"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/integrations"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/sources"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/utils"
)

// BuildProgress represents the progress of a build or extract run
type BuildProgress struct {
	Phase   string // "scanning", "extracting", "copying", "writing", "complete", "error"
	Source  string
	Item    string
	Current int
	Total   int
	Err     error
}

// Builder orchestrates the pipeline: discover sources, extract card images,
// sort them, and lay them out into the sheet PDF.
type Builder struct {
	assetsDir    string
	chain        *extract.Chain
	writer       *integrations.SheetWriter
	progressChan chan BuildProgress
	failures     []data.FailedPDF
}

// NewBuilder creates a new Builder instance
func NewBuilder(assetsDir string, useFallback bool, dpi float64) *Builder {
	return &Builder{
		assetsDir:    assetsDir,
		chain:        extract.NewChain(useFallback),
		writer:       integrations.NewSheetWriter(dpi),
		progressChan: make(chan BuildProgress, 100),
	}
}

// Progress returns the channel for receiving progress updates
func (b *Builder) Progress() <-chan BuildProgress {
	return b.progressChan
}

// Close closes the progress channel once the run has finished
func (b *Builder) Close() {
	close(b.progressChan)
}

// Build runs the full pipeline and writes the sheet PDF to outputPath.
// Extracted images live in a run-scoped temp directory that is removed
// before returning.
func (b *Builder) Build(outputPath string) (*data.BuildResult, error) {
	workDir, err := os.MkdirTemp("", "daggerheart-cards-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	cards, err := b.Collect(workDir)
	if err != nil {
		b.sendProgress(BuildProgress{Phase: "error", Err: err})
		return nil, err
	}
	if len(cards) == 0 {
		err := fmt.Errorf("no card images found in %s", b.assetsDir)
		b.sendProgress(BuildProgress{Phase: "error", Err: err})
		return nil, err
	}

	err = b.writer.Write(cards, outputPath, func(current, total int) {
		b.sendProgress(BuildProgress{
			Phase:   "writing",
			Item:    fmt.Sprintf("page %d/%d", current, total),
			Current: current,
			Total:   total,
		})
	})
	if err != nil {
		b.sendProgress(BuildProgress{Phase: "error", Err: err})
		return nil, err
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output file: %w", err)
	}

	result := &data.BuildResult{
		Cards:      len(cards),
		Pages:      b.writer.Grid().PageCount(len(cards)),
		OutputPath: outputPath,
		OutputSize: info.Size(),
		Failures:   b.failures,
	}
	b.sendProgress(BuildProgress{Phase: "complete", Current: result.Pages, Total: result.Pages})
	return result, nil
}

// Extract runs discovery and extraction only, writing normalized card images
// into outputDir, which is created if needed and kept afterwards.
func (b *Builder) Extract(outputDir string) (*data.BuildResult, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	cards, err := b.Collect(outputDir)
	if err != nil {
		b.sendProgress(BuildProgress{Phase: "error", Err: err})
		return nil, err
	}
	if len(cards) == 0 {
		err := fmt.Errorf("no card images found in %s", b.assetsDir)
		b.sendProgress(BuildProgress{Phase: "error", Err: err})
		return nil, err
	}

	result := &data.BuildResult{
		Cards:      len(cards),
		OutputPath: outputDir,
		Failures:   b.failures,
	}
	b.sendProgress(BuildProgress{Phase: "complete"})
	return result, nil
}

// Collect extracts card images from every source into destDir and returns
// them sorted by source name, then item name (case-insensitive), keeping
// pages of one PDF in order. Per-item failures are recorded, not fatal.
func (b *Builder) Collect(destDir string) ([]data.CardImage, error) {
	b.failures = nil

	srcs, err := sources.Discover(b.assetsDir)
	if err != nil {
		return nil, err
	}

	total, err := sources.CountItems(srcs)
	if err != nil {
		return nil, err
	}
	b.sendProgress(BuildProgress{Phase: "scanning", Total: total})

	var cards []data.CardImage
	current := 0

	for _, src := range srcs {
		items, err := src.Items()
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", src.Name(), err)
		}

		for _, item := range items {
			current++

			switch item.Kind {
			case sources.KindPDF:
				b.sendProgress(BuildProgress{
					Phase: "extracting", Source: src.Name(), Item: item.Name,
					Current: current, Total: total,
				})
				cards = append(cards, b.extractPDF(src, item, destDir)...)
			case sources.KindImage:
				b.sendProgress(BuildProgress{
					Phase: "copying", Source: src.Name(), Item: item.Name,
					Current: current, Total: total,
				})
				if card, ok := b.copyImage(src, item, destDir); ok {
					cards = append(cards, card)
				}
			}
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		si, sj := strings.ToLower(cards[i].Source), strings.ToLower(cards[j].Source)
		if si != sj {
			return si < sj
		}
		ii, ij := strings.ToLower(cards[i].Item), strings.ToLower(cards[j].Item)
		if ii != ij {
			return ii < ij
		}
		return cards[i].Page < cards[j].Page
	})

	return cards, nil
}

// extractPDF runs the fallback chain on one PDF item. Failures are recorded
// and the item is skipped.
func (b *Builder) extractPDF(src sources.Source, item sources.Item, destDir string) []data.CardImage {
	raw, err := src.Read(item.Name)
	if err != nil {
		b.recordFailure(src, item, err.Error(), false)
		return nil
	}

	baseName := utils.SanitizeFilename(src.Slug() + "_" + utils.Stem(item.Name))
	paths, failure := b.chain.Extract(raw, destDir, baseName)

	if failure != nil {
		b.recordFailure(src, item, failure.Err, failure.UsedFallback)
	}

	cards := make([]data.CardImage, 0, len(paths))
	for page, path := range paths {
		cards = append(cards, data.CardImage{
			Source:    src.Name(),
			Item:      item.Name,
			Page:      page,
			ImagePath: path,
		})
	}
	return cards
}

// copyImage normalizes one plain image item into destDir.
func (b *Builder) copyImage(src sources.Source, item sources.Item, destDir string) (data.CardImage, bool) {
	raw, err := src.Read(item.Name)
	if err != nil {
		b.recordFailure(src, item, err.Error(), false)
		return data.CardImage{}, false
	}

	path, err := extract.SaveImage(raw, destDir, src.Slug(), item.Name)
	if err != nil {
		b.recordFailure(src, item, err.Error(), false)
		return data.CardImage{}, false
	}

	return data.CardImage{
		Source:    src.Name(),
		Item:      item.Name,
		ImagePath: path,
	}, true
}

func (b *Builder) recordFailure(src sources.Source, item sources.Item, msg string, usedFallback bool) {
	b.failures = append(b.failures, data.FailedPDF{
		Source:       src.Name(),
		Item:         item.Name,
		Err:          msg,
		UsedFallback: usedFallback,
	})
}

// sendProgress sends a progress update (non-blocking)
func (b *Builder) sendProgress(progress BuildProgress) {
	select {
	case b.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}
