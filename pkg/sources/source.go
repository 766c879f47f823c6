package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Kind tells the builder how to process an item.
type Kind int

const (
	KindPDF Kind = iota
	KindImage
)

// Item is one extractable payload within a source.
type Item struct {
	Name string
	Kind Kind
}

// Source yields card payloads from one location in the assets directory.
type Source interface {
	// Name is the display name used in reports ("cards.zip", "(direct)").
	Name() string
	// Slug is the filename-safe prefix for extracted images.
	Slug() string
	// Items lists the source's payloads: PDFs first, then images, each sorted.
	Items() ([]Item, error)
	// Read returns the raw bytes of one item.
	Read(name string) ([]byte, error)
}

// Discover scans the assets directory and returns all sources in processing
// order: one source per ZIP archive (alphabetical), then a single source for
// loose PDF and image files.
func Discover(assetsDir string) ([]Source, error) {
	info, err := os.Stat(assetsDir)
	if err != nil {
		return nil, fmt.Errorf("assets directory not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets path is not a directory: %s", assetsDir)
	}

	zips, err := filepath.Glob(filepath.Join(assetsDir, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for archives: %w", err)
	}
	sort.Strings(zips)

	var srcs []Source
	for _, zp := range zips {
		srcs = append(srcs, NewZipSource(zp))
	}
	srcs = append(srcs, NewDirSource(assetsDir))

	return srcs, nil
}

// CountItems returns the total number of items across all sources, used as
// the progress total before extraction starts.
func CountItems(srcs []Source) (int, error) {
	total := 0
	for _, src := range srcs {
		items, err := src.Items()
		if err != nil {
			return 0, fmt.Errorf("failed to list %s: %w", src.Name(), err)
		}
		total += len(items)
	}
	return total, nil
}
