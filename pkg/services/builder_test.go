package services

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/sources"
)

func cardPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 190, 266))
	for y := 0; y < 266; y++ {
		for x := 0; x < 190; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test card: %v", err)
	}
	return buf.Bytes()
}

func setupAssets(t *testing.T) string {
	t.Helper()

	assets := t.TempDir()
	card := cardPNG(t)

	for _, name := range []string{"a-card.png", "b-card.png"} {
		if err := os.WriteFile(filepath.Join(assets, name), card, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	f, err := os.Create(filepath.Join(assets, "cards.zip"))
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	w := zip.NewWriter(f)
	entry, err := w.Create("c-card.png")
	if err != nil {
		t.Fatalf("Failed to create zip entry: %v", err)
	}
	if _, err := entry.Write(card); err != nil {
		t.Fatalf("Failed to write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}

	return assets
}

func TestCollectSortsAcrossSources(t *testing.T) {
	assets := setupAssets(t)

	b := NewBuilder(assets, false, 0)
	cards, err := b.Collect(t.TempDir())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}

	// "(direct)" sorts before "cards.zip".
	if cards[0].Source != sources.DirectName || cards[0].Item != "a-card.png" {
		t.Errorf("Unexpected first card: %+v", cards[0])
	}
	if cards[1].Source != sources.DirectName || cards[1].Item != "b-card.png" {
		t.Errorf("Unexpected second card: %+v", cards[1])
	}
	if cards[2].Source != "cards.zip" || cards[2].Item != "c-card.png" {
		t.Errorf("Unexpected third card: %+v", cards[2])
	}

	for _, card := range cards {
		if _, err := os.Stat(card.ImagePath); err != nil {
			t.Errorf("Extracted image missing for %s: %v", card.Item, err)
		}
	}
}

func TestBuildWritesSheetPDF(t *testing.T) {
	assets := setupAssets(t)
	output := filepath.Join(t.TempDir(), "out", "cards.pdf")

	b := NewBuilder(assets, false, 72)
	result, err := b.Build(output)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result.Cards != 3 {
		t.Errorf("Expected 3 cards, got %d", result.Cards)
	}
	if result.Pages != 1 {
		t.Errorf("Expected 1 page, got %d", result.Pages)
	}
	if len(result.Failures) != 0 {
		t.Errorf("Expected no failures, got %+v", result.Failures)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Output PDF missing: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Output does not look like a PDF")
	}
	if result.OutputSize != int64(len(data)) {
		t.Errorf("Reported size %d, actual %d", result.OutputSize, len(data))
	}
}

func TestBuildFailsWithoutCards(t *testing.T) {
	b := NewBuilder(t.TempDir(), false, 0)
	if _, err := b.Build(filepath.Join(t.TempDir(), "out.pdf")); err == nil {
		t.Fatal("Expected an error for an empty assets directory")
	}
}

func TestCollectSkipsUndecodableImages(t *testing.T) {
	assets := setupAssets(t)
	if err := os.WriteFile(filepath.Join(assets, "broken.png"), []byte("garbage"), 0644); err != nil {
		t.Fatalf("Failed to write broken image: %v", err)
	}

	b := NewBuilder(assets, false, 0)
	cards, err := b.Collect(t.TempDir())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(cards) != 3 {
		t.Errorf("Expected the broken image to be skipped, got %d cards", len(cards))
	}
	if len(b.failures) != 1 {
		t.Fatalf("Expected 1 failure record, got %d", len(b.failures))
	}
	if b.failures[0].Item != "broken.png" || b.failures[0].UsedFallback {
		t.Errorf("Unexpected failure record: %+v", b.failures[0])
	}
}

func TestExtractKeepsOutputDirectory(t *testing.T) {
	assets := setupAssets(t)
	output := filepath.Join(t.TempDir(), "images")

	b := NewBuilder(assets, false, 0)
	result, err := b.Extract(output)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Cards != 3 {
		t.Errorf("Expected 3 cards, got %d", result.Cards)
	}

	entries, err := os.ReadDir(output)
	if err != nil {
		t.Fatalf("Output directory missing: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 extracted images, got %d", len(entries))
	}
}

func TestProgressUpdatesAreEmitted(t *testing.T) {
	assets := setupAssets(t)

	b := NewBuilder(assets, false, 0)
	if _, err := b.Collect(t.TempDir()); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	b.Close()

	var phases []string
	for p := range b.Progress() {
		phases = append(phases, p.Phase)
	}

	if len(phases) == 0 {
		t.Fatal("Expected progress updates")
	}
	if phases[0] != "scanning" {
		t.Errorf("Expected the first update to be scanning, got %s", phases[0])
	}
}
