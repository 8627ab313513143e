package buildinfo

import (
	"runtime/debug"
	"testing"
)

func withBuildInfo(t *testing.T, settings []debug.BuildSetting, ok bool) {
	t.Helper()
	oldRead := readBuildInfo
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() {
		readBuildInfo = oldRead
		Version, Commit, Date = oldVersion, oldCommit, oldDate
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, ok
	}
}

func TestSummary_Plain(t *testing.T) {
	withBuildInfo(t, nil, false)
	Version, Commit, Date = "", "", ""
	if got := Summary(); got != "dev" {
		t.Fatalf("got %q", got)
	}
}

func TestSummary_LdflagsWin(t *testing.T) {
	withBuildInfo(t, []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffffff"}}, true)
	Version, Commit, Date = "1.0.0", "0123456789abcdef", "2026-01-02"
	if got := Summary(); got != "1.0.0 (commit=0123456, date=2026-01-02)" {
		t.Fatalf("got %q", got)
	}
}

func TestSummary_VCSFallback(t *testing.T) {
	withBuildInfo(t, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abcdef1234567"},
		{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		{Key: "vcs.modified", Value: "true"},
	}, true)
	Version, Commit, Date = "0.2.0", "", ""
	want := "0.2.0 (commit=abcdef1-dirty, date=2026-03-04T05:06:07Z)"
	if got := Summary(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if info := Get(); !info.Dirty || info.Commit != "abcdef1234567" {
		t.Fatalf("unexpected info %+v", info)
	}
}
