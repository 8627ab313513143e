package stage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/malteki/cargo-cleaner/internal/config"
	"github.com/malteki/cargo-cleaner/internal/dispatch"
	"github.com/malteki/cargo-cleaner/internal/report"
	"github.com/malteki/cargo-cleaner/internal/testutil"
	"github.com/malteki/cargo-cleaner/internal/timing"
)

func requirePOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell tests require POSIX shell")
	}
}

const fakeCargo = `case "$1" in
*broken*) echo "error: broken manifest" >&2; exit 101 ;;
*) echo "     Removed 2 files, 1.5KiB total" >&2 ;;
esac`

func fixture(t *testing.T) config.Settings {
	t.Helper()
	root := t.TempDir()
	if err := testutil.WriteTree(root, map[string]string{
		"a/Cargo.toml":            "",
		"b/cargo.toml":            "",
		"broken/Cargo.toml":       "",
		"a/target/x/Cargo.toml":   "",
		"notes/Cargo.toml.bak":    "",
		"deep/1/2/3/4/Cargo.toml": "",
	}); err != nil {
		t.Fatal(err)
	}
	s := config.Defaults()
	s.Root = root
	s.Program = "sh"
	s.Args = []string{"-c", fakeCargo, "fake-cargo", dispatch.ManifestPlaceholder}
	s.Exclude = []string{"target"}
	s.Workers = 2
	return s
}

func runAll(t *testing.T, in Envelope, deps Deps, names ...string) Envelope {
	t.Helper()
	out := in
	for _, name := range names {
		var err error
		out, err = Run(context.Background(), name, out, deps)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	return out
}

func TestRun_UnknownStage(t *testing.T) {
	_, err := Run(context.Background(), "nope", Envelope{}, Deps{})
	var unknown ErrUnknown
	if !errors.As(err, &unknown) || err.Error() != "unknown stage: nope" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNames(t *testing.T) {
	got := strings.Join(Names(), ",")
	if got != "clean,discover,process,write-report" {
		t.Fatalf("unexpected stages %s", got)
	}
}

func TestDiscover(t *testing.T) {
	s := fixture(t)
	s.MaxDepth = 3
	out := runAll(t, Envelope{Settings: s}, Deps{}, "discover")
	var rel []string
	for _, m := range out.Manifests {
		r, _ := filepath.Rel(s.Root, m)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := "a/Cargo.toml,b/cargo.toml,broken/Cargo.toml"
	if strings.Join(rel, ",") != want {
		t.Fatalf("got %v want %s", rel, want)
	}
	if len(out.Results) != 0 {
		t.Fatal("discover must not run commands")
	}
}

func TestCleanProcessReport(t *testing.T) {
	requirePOSIXShell(t)
	s := fixture(t)
	s.Report = filepath.Join(t.TempDir(), "out", "report.yaml")
	rec := timing.New(false)
	deps := Deps{Timing: rec, Version: "test"}

	out := runAll(t, Envelope{Settings: s}, deps, "clean")
	if len(out.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(out.Results))
	}
	if out.FailureCount() != 1 {
		t.Fatalf("expected 1 raw failure, got %d", out.FailureCount())
	}

	out = runAll(t, out, deps, "process", "write-report")
	sum := out.Summary
	if sum == nil {
		t.Fatal("missing summary")
	}
	if sum.ManifestsSeen != 4 || sum.ManifestsSucceeded != 3 {
		t.Fatalf("seen/succeeded %d/%d", sum.ManifestsSeen, sum.ManifestsSucceeded)
	}
	if sum.FilesRemoved != 6 || sum.BytesRemoved != 3*1536 {
		t.Fatalf("unexpected totals %+v", sum.Delta)
	}
	if out.FailureCount() != 1 || !strings.HasSuffix(sum.Failures[0].Manifest, filepath.Join("broken", "Cargo.toml")) {
		t.Fatalf("unexpected failures %+v", sum.Failures)
	}

	b, err := os.ReadFile(s.Report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var rep report.Report
	if err := yaml.Unmarshal(b, &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Version != "test" || rep.ManifestsSucceeded != 3 || rep.FilesRemoved != 6 || len(rep.Failures) != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestWriteReport_Disabled(t *testing.T) {
	in := Envelope{Settings: config.Defaults()}
	out, err := Run(context.Background(), "write-report", in, Deps{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Summary != nil {
		t.Fatal("unexpected summary")
	}
}

func TestClean_InvalidSettings(t *testing.T) {
	s := config.Defaults()
	s.Args = []string{"{json}"}
	if _, err := Run(context.Background(), "clean", Envelope{Settings: s}, Deps{}); err == nil {
		t.Fatal("expected template error")
	}
}

func TestFailureCount_FromResults(t *testing.T) {
	env := Envelope{Results: []dispatch.Result{
		dispatch.Failed{Manifest: "a"},
		dispatch.Completed{Manifest: "b", Success: false, ExitCode: 2},
		dispatch.Completed{Manifest: "c", Success: true},
	}}
	if env.FailureCount() != 2 {
		t.Fatalf("got %d", env.FailureCount())
	}
}
