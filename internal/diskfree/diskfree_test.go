package diskfree

import (
	"path/filepath"
	"testing"
)

func TestFree_TempDir(t *testing.T) {
	free, ok := Free(t.TempDir())
	if !ok {
		t.Skip("disk usage not available on this platform")
	}
	if free == 0 {
		t.Fatal("expected some free space in the temp dir")
	}
}

func TestFree_MissingPath(t *testing.T) {
	if _, ok := Free(filepath.Join(t.TempDir(), "missing", "dir")); ok {
		t.Fatal("expected failure for a missing path")
	}
}

func TestChange_Reclaimed(t *testing.T) {
	if got := (Change{Before: 10, After: 25}).Reclaimed(); got != 15 {
		t.Fatalf("got %d", got)
	}
	if got := (Change{Before: 25, After: 10}).Reclaimed(); got != 0 {
		t.Fatalf("got %d", got)
	}
}
