package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/malteki/cargo-cleaner/internal/testutil"
)

type runResult struct {
	code   int
	stdout []byte
	stderr []byte
}

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
	buildOut  []byte
)

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found")
		}
		dir = parent
	}
}

// buildCleaner compiles the binary once per test process.
func buildCleaner(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("e2e builds the binary")
	}
	root := repoRoot(t)
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "cargo-cleaner-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "cargo-cleaner")
		if runtime.GOOS == "windows" {
			binPath += ".exe"
		}
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/cargo-cleaner")
		cmd.Dir = root
		cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
		buildOut, buildErr = cmd.CombinedOutput()
	})
	if buildErr != nil {
		t.Fatalf("build failed: %v\n%s", buildErr, buildOut)
	}
	return binPath
}

// runCmd runs bin with a clean CARGO_CLEANER_* environment plus env.
func runCmd(t *testing.T, bin string, env []string, args ...string) runResult {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = t.TempDir()
	base := make([]string, 0, len(os.Environ()))
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "CARGO_CLEANER_") && !strings.HasPrefix(kv, "NO_COLOR=") {
			base = append(base, kv)
		}
	}
	cmd.Env = append(append(base, "NO_COLOR=1"), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		} else {
			code = -1
		}
	}
	return runResult{code: code, stdout: stdout.Bytes(), stderr: stderr.Bytes()}
}

// fakeCargoPath returns a PATH whose first entry holds a `cargo` script that
// mimics `cargo clean --manifest-path <manifest>`.
func fakeCargoPath(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo requires POSIX shell")
	}
	dir := t.TempDir()
	script := `#!/bin/sh
manifest="$3"
case "$manifest" in
*broken*) echo "error: failed to parse manifest at $manifest" >&2; exit 101 ;;
*empty*) echo "     Removed 0 files" >&2 ;;
*) echo "     Removed 7 files, 1.5MiB total" >&2 ;;
esac
`
	if err := testutil.WriteScript(filepath.Join(dir, "cargo"), script); err != nil {
		t.Fatalf("write fake cargo: %v", err)
	}
	return "PATH=" + dir + string(os.PathListSeparator) + os.Getenv("PATH")
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := testutil.WriteTree(root, map[string]string{
		"app/Cargo.toml":                "",
		"crates/core/Cargo.toml":        "",
		"crates/empty/Cargo.toml":       "",
		"crates/broken/Cargo.toml":      "",
		"crates/core/target/Cargo.toml": "",
		"docs/README.md":                "",
	}); err != nil {
		t.Fatal(err)
	}
	return root
}
