package slug_test

import (
	"strings"
	"testing"

	"lernova/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Rust Ownership":       "rust-ownership",
		"  C++ / Templates!! ": "c-templates",
		"日本語":                  "session",
		"":                     "session",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeTruncatesAtWordBoundary(t *testing.T) {
	t.Parallel()
	got := slug.Make(strings.Repeat("distributed systems ", 10))
	if len(got) > slug.MaxLen || strings.HasSuffix(got, "-") || strings.HasSuffix(got, "syst") {
		t.Fatalf("unexpected truncation %q", got)
	}
}
