package extract

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SaveImage validates that raw bytes decode as an image and writes them into
// destDir under the original name prefixed with the source slug. Path
// separators in ZIP entry names become underscores, so entries like
// "art/back.png" and "back.png" map to distinct files. Undecodable payloads
// are rejected so the layout stage never trips over them.
func SaveImage(raw []byte, destDir, slug, imageName string) (string, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return "", fmt.Errorf("not a decodable image: %w", err)
	}

	flat := strings.ReplaceAll(filepath.ToSlash(imageName), "/", "_")
	path := filepath.Join(destDir, fmt.Sprintf("%s_%s", slug, flat))
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
