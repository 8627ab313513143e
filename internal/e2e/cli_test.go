package e2e

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/malteki/cargo-cleaner/internal/testutil"
)

func TestCLI_CleanSummary(t *testing.T) {
	bin := buildCleaner(t)
	path := fakeCargoPath(t)
	root := writeWorkspace(t)

	r := runCmd(t, bin, []string{path}, "clean", "--exclude", "target", root)
	if r.code != 0 {
		t.Fatalf("exit %d\nstderr:\n%s", r.code, r.stderr)
	}
	want := "ran successfully on 3/4 cargo.toml files\nremoved 14 files (3.1 MB)\n"
	if string(r.stdout) != want {
		t.Fatalf("stdout %q want %q", r.stdout, want)
	}
}

func TestCLI_StableAcrossWorkerCounts(t *testing.T) {
	bin := buildCleaner(t)
	path := fakeCargoPath(t)
	src := writeWorkspace(t)

	var first []byte
	for i, workers := range []int{1, 2, 8} {
		root := filepath.Join(t.TempDir(), "ws")
		if err := testutil.CopyTree(src, root); err != nil {
			t.Fatal(err)
		}
		r := runCmd(t, bin, []string{path}, "clean", "-w", fmt.Sprint(workers), root)
		if r.code != 0 {
			t.Fatalf("workers=%d exit %d: %s", workers, r.code, r.stderr)
		}
		if i == 0 {
			first = r.stdout
			continue
		}
		if !bytes.Equal(r.stdout, first) {
			t.Fatalf("stdout drift with workers=%d:\n%s\nvs\n%s", workers, r.stdout, first)
		}
	}
}

func TestCLI_StrictExitCode(t *testing.T) {
	bin := buildCleaner(t)
	path := fakeCargoPath(t)
	root := writeWorkspace(t)

	r := runCmd(t, bin, []string{path, "CARGO_CLEANER_STRICT=true"}, "clean", root)
	if r.code != 1 {
		t.Fatalf("expected exit 1, got %d", r.code)
	}
	lines := strings.Split(strings.TrimSpace(string(r.stderr)), "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "strict: 1 of 5 manifests failed") {
		t.Fatalf("unexpected last stderr line %q", last)
	}
}

func TestCLI_MaxDepthFromEnvFile(t *testing.T) {
	bin := buildCleaner(t)
	path := fakeCargoPath(t)
	root := writeWorkspace(t)
	envFile := filepath.Join(t.TempDir(), "cleaner.env")
	if err := os.WriteFile(envFile, []byte("CARGO_CLEANER_MAX_DEPTH=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := runCmd(t, bin, []string{path}, "clean", "--env-file", envFile, root)
	if r.code != 0 {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.HasPrefix(string(r.stdout), "ran successfully on 1/1 cargo.toml files\n") {
		t.Fatalf("unexpected stdout %q", r.stdout)
	}
}

func TestCLI_ConfigErrorIsOneLine(t *testing.T) {
	bin := buildCleaner(t)
	cfg := filepath.Join(t.TempDir(), "bad.cue")
	if err := os.WriteFile(cfg, []byte("maxDepth: \"deep\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := runCmd(t, bin, nil, "clean", "-c", cfg, t.TempDir())
	if r.code != 1 {
		t.Fatalf("expected exit 1, got %d", r.code)
	}
	if got := string(r.stderr); got != "invalid type for field: maxDepth (expected int)\n" {
		t.Fatalf("unexpected stderr %q", got)
	}
	if len(r.stdout) != 0 {
		t.Fatalf("unexpected stdout %q", r.stdout)
	}
}

func TestCLI_Version(t *testing.T) {
	bin := buildCleaner(t)
	r := runCmd(t, bin, nil, "version")
	if r.code != 0 || !strings.HasPrefix(string(r.stdout), "cargo-cleaner ") {
		t.Fatalf("unexpected version output %d %q", r.code, r.stdout)
	}
}
