package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/utils"
)

// DirectName labels cards that came from loose files in the assets directory.
const DirectName = "(direct)"

// DirSource yields PDFs and images lying directly in the assets directory.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (d *DirSource) Name() string {
	return DirectName
}

func (d *DirSource) Slug() string {
	return "direct"
}

// Items lists loose PDFs followed by loose images, each sorted by name.
// Subdirectories are not descended into.
func (d *DirSource) Items() ([]Item, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets directory: %w", err)
	}

	var pdfs, images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case utils.IsPDFFile(e.Name()):
			pdfs = append(pdfs, e.Name())
		case utils.IsImageFile(e.Name()):
			images = append(images, e.Name())
		}
	}
	sort.Strings(pdfs)
	sort.Strings(images)

	items := make([]Item, 0, len(pdfs)+len(images))
	for _, name := range pdfs {
		items = append(items, Item{Name: name, Kind: KindPDF})
	}
	for _, name := range images {
		items = append(items, Item{Name: name, Kind: KindImage})
	}
	return items, nil
}

func (d *DirSource) Read(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.dir, name))
}
