package enrich_test

import (
	"testing"

	"github.com/birkelund/voxvault/internal/enrich"
	"github.com/birkelund/voxvault/internal/nlp"
)

func newCleaner(t *testing.T) *enrich.Cleaner {
	t.Helper()
	splitter, err := nlp.NewPunktSplitter()
	if err != nil {
		t.Fatalf("NewPunktSplitter() error = %v", err)
	}
	return enrich.NewCleaner(splitter)
}

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	cleaner := newCleaner(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   " \t\n ",
			want: "",
		},
		{
			name: "collapses and capitalises",
			in:   "  hello,  world!  ",
			want: "Hello, world!",
		},
		{
			name: "space before punctuation removed",
			in:   "we left , it rained !",
			want: "We left, it rained!",
		},
		{
			name: "decimal survives",
			in:   "pi is roughly 3.14 today.",
			want: "Pi is roughly 3.14 today.",
		},
		{
			name: "multiple sentences capitalised",
			in:   "it was sunny. we went hiking. the trail was muddy.",
			want: "It was sunny. We went hiking. The trail was muddy.",
		},
		{
			name: "newlines collapse to spaces",
			in:   "first line\nsecond line.",
			want: "First line second line.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cleaner.Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleaner_CleanIsIdempotent(t *testing.T) {
	t.Parallel()

	cleaner := newCleaner(t)
	once := cleaner.Clean("  hello,  world!  this is   a test. ")
	twice := cleaner.Clean(once)
	if once != twice {
		t.Errorf("second Clean changed output: %q -> %q", once, twice)
	}
}
