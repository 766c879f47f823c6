package extract

import (
	"os"
	"path/filepath"
	"testing"
)

// A minimal 1x1 PNG.
var testPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52, // IHDR chunk
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, // 1x1 dimensions
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
	0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41, // IDAT chunk
	0x54, 0x08, 0x99, 0x63, 0xF8, 0x0F, 0x00, 0x00,
	0x01, 0x01, 0x00, 0x05, 0x18, 0x0D, 0xA3, 0xD2,
	0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, // IEND chunk
	0xAE, 0x42, 0x60, 0x82,
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveImage(testPNG, dir, "cards", "token.png")
	if err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}

	if filepath.Base(path) != "cards_token.png" {
		t.Errorf("Unexpected file name: %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved image: %v", err)
	}
	if len(data) != len(testPNG) {
		t.Errorf("Saved image differs: %d bytes vs %d", len(data), len(testPNG))
	}
}

func TestSaveImageKeepsEntryPathsDistinct(t *testing.T) {
	dir := t.TempDir()

	nested, err := SaveImage(testPNG, dir, "cards", "art/back.png")
	if err != nil {
		t.Fatalf("Failed to save nested image: %v", err)
	}
	if filepath.Base(nested) != "cards_art_back.png" {
		t.Errorf("Unexpected file name: %s", filepath.Base(nested))
	}

	plain, err := SaveImage(testPNG, dir, "cards", "back.png")
	if err != nil {
		t.Fatalf("Failed to save plain image: %v", err)
	}
	if plain == nested {
		t.Error("Sibling entries must not overwrite each other")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 files, got %d", len(entries))
	}
}

func TestSaveImageRejectsGarbage(t *testing.T) {
	_, err := SaveImage([]byte("definitely not an image"), t.TempDir(), "cards", "bad.png")
	if err == nil {
		t.Fatal("Expected an error for undecodable bytes")
	}
}
