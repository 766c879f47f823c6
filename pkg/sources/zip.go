package sources

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/utils"
)

// ZipSource yields PDFs and images stored inside a ZIP archive.
type ZipSource struct {
	path string
}

func NewZipSource(path string) *ZipSource {
	return &ZipSource{path: path}
}

func (z *ZipSource) Name() string {
	return filepath.Base(z.path)
}

func (z *ZipSource) Slug() string {
	return utils.SanitizeFilename(utils.Stem(z.path))
}

// Items lists the archive's PDF entries followed by its image entries, each
// sorted by name. Directory entries and macOS metadata are skipped.
func (z *ZipSource) Items() ([]Item, error) {
	r, err := zip.OpenReader(z.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	var pdfs, images []string
	for _, f := range r.File {
		if !usableEntry(f) {
			continue
		}
		switch {
		case utils.IsPDFFile(f.Name):
			pdfs = append(pdfs, f.Name)
		case utils.IsImageFile(f.Name):
			images = append(images, f.Name)
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

func (z *ZipSource) Read(name string) ([]byte, error) {
	r, err := zip.OpenReader(z.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", name, z.Name())
}

func usableEntry(f *zip.File) bool {
	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		return false
	}
	if strings.HasPrefix(f.Name, "__MACOSX/") {
		return false
	}
	return true
}
