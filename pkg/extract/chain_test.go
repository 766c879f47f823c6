package extract

import (
	"errors"
	"testing"
)

type fakeExtractor struct {
	name  string
	paths []string
	err   error
	calls int
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Extract(pdf []byte, destDir, baseName string) ([]string, error) {
	f.calls++
	return f.paths, f.err
}

func TestChainPrimarySucceeds(t *testing.T) {
	primary := &fakeExtractor{name: "primary", paths: []string{"a_p0.png"}}
	fallback := &fakeExtractor{name: "fallback"}
	chain := NewChainWith(primary, fallback)

	paths, failure := chain.Extract([]byte("%PDF"), t.TempDir(), "a")
	if failure != nil {
		t.Fatalf("Expected no failure, got %+v", failure)
	}
	if len(paths) != 1 {
		t.Fatalf("Expected 1 path, got %d", len(paths))
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback should not run when primary succeeds")
	}
}

func TestChainFallbackRecovers(t *testing.T) {
	primary := &fakeExtractor{name: "primary", err: errors.New("stream error")}
	fallback := &fakeExtractor{name: "fallback", paths: []string{"a_p0.png", "a_p1.png"}}
	chain := NewChainWith(primary, fallback)

	paths, failure := chain.Extract([]byte("%PDF"), t.TempDir(), "a")
	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}
	if failure == nil {
		t.Fatal("Expected a failure record for the recovered item")
	}
	if !failure.UsedFallback {
		t.Error("Expected UsedFallback to be set")
	}
	if failure.Err != "stream error" {
		t.Errorf("Expected the primary error to be carried, got %q", failure.Err)
	}
}

func TestChainNoImagesTriggersFallback(t *testing.T) {
	primary := &fakeExtractor{name: "primary"} // succeeds with zero images
	fallback := &fakeExtractor{name: "fallback", paths: []string{"a_p0.png"}}
	chain := NewChainWith(primary, fallback)

	paths, failure := chain.Extract([]byte("%PDF"), t.TempDir(), "a")
	if len(paths) != 1 {
		t.Fatalf("Expected 1 path, got %d", len(paths))
	}
	if failure == nil || !failure.UsedFallback {
		t.Fatalf("Expected a fallback failure record, got %+v", failure)
	}
	if failure.Err != "no images found in PDF" {
		t.Errorf("Unexpected primary error: %q", failure.Err)
	}
}

func TestChainBothFail(t *testing.T) {
	primary := &fakeExtractor{name: "primary", err: errors.New("bad xref")}
	fallback := &fakeExtractor{name: "fallback", err: errors.New("cannot open")}
	chain := NewChainWith(primary, fallback)

	paths, failure := chain.Extract([]byte("%PDF"), t.TempDir(), "a")
	if len(paths) != 0 {
		t.Fatalf("Expected no paths, got %d", len(paths))
	}
	if failure == nil || failure.UsedFallback {
		t.Fatalf("Expected a hard failure record, got %+v", failure)
	}
}

func TestChainFallbackDisabled(t *testing.T) {
	primary := &fakeExtractor{name: "primary", err: errors.New("bad xref")}
	chain := NewChainWith(primary, nil)

	paths, failure := chain.Extract([]byte("%PDF"), t.TempDir(), "a")
	if len(paths) != 0 {
		t.Fatalf("Expected no paths, got %d", len(paths))
	}
	if failure == nil || failure.UsedFallback {
		t.Fatalf("Expected a hard failure record, got %+v", failure)
	}
	if failure.Err != "bad xref" {
		t.Errorf("Expected the primary error, got %q", failure.Err)
	}
}

func TestPDFCPURejectsBadHeader(t *testing.T) {
	e := NewPDFCPUExtractor()
	_, err := e.Extract([]byte("not a pdf at all"), t.TempDir(), "a")
	if err == nil {
		t.Fatal("Expected an error for a payload without a PDF header")
	}
}
