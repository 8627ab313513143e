package cleanout

import (
	"testing"
)

func TestParse_Table(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		want   Delta
		wantOK bool
	}{
		{"decimal megabytes", "Removed 12 files, 3.4MB total", Delta{12, 3_400_000}, true},
		{"no total clause", "Removed 0 files", Delta{0, 0}, true},
		{"binary mebibytes", "     Removed 7 files, 1.5MiB total\n", Delta{7, 1_572_864}, true},
		{"gigabytes", "Removed 30512 files, 2.25GB total", Delta{30512, 2_250_000_000}, true},
		{"plain bytes", "Removed 1 files, 512B total", Delta{1, 512}, true},
		{"surrounding output", "warning: foo\n     Removed 3 files, 10kB total\nbar", Delta{3, 10_000}, true},
		{"unknown unit", "Removed 4 files, 3.4XB total", Delta{4, 0}, true},
		{"unrelated text", "error: could not find `Cargo.toml`", Delta{}, false},
		{"empty", "", Delta{}, false},
		{"count overflows u32", "Removed 4294967296 files, 1MB total", Delta{}, false},
	}
	p := NewParser()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := p.Parse(tc.text)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestParse_FirstMatchWins(t *testing.T) {
	text := "Removed 2 files, 1MB total\nRemoved 5 files, 9MB total\n"
	got, ok := Parse(text)
	if !ok {
		t.Fatalf("expected match")
	}
	if got != (Delta{FilesRemoved: 2, BytesRemoved: 1_000_000}) {
		t.Fatalf("unexpected delta: %+v", got)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := NewParser()
	text := "     Removed 812 files, 301.7MiB total"
	a, okA := p.Parse(text)
	b, okB := p.Parse(text)
	if !okA || !okB || a != b {
		t.Fatalf("parse not idempotent: %+v/%v vs %+v/%v", a, okA, b, okB)
	}
}

func TestParseBytes_InvalidUTF8(t *testing.T) {
	raw := append([]byte{0xff, 0xfe}, []byte(" Removed 9 files, 1kB total")...)
	got, ok := NewParser().ParseBytes(raw)
	if !ok || got != (Delta{FilesRemoved: 9, BytesRemoved: 1000}) {
		t.Fatalf("unexpected: %+v ok=%v", got, ok)
	}
}

func TestText_ReplacesInvalidSequences(t *testing.T) {
	if got := Text([]byte{'a', 0xff, 'b'}); got != "a\uFFFDb" {
		t.Fatalf("unexpected text: %q", got)
	}
}
