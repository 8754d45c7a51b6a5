package similarity

import (
	"fmt"
	"math"
	"testing"
)

func TestExtractPageCount(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"188 S.", 188, true},
		{"XII, 188 S.", 188, true},
		{"352 p.", 352, true},
		{"200 pages", 200, true},
		{"415 Seiten", 415, true},
		{"VIII, 224 S. : Ill.", 224, true},
		{"188, 23 cm", 188, true},
		{"300", 300, true},
		{"ca. 120 S.", 120, true},
		{"Getr. Zählung", 0, false},
		{"", 0, false},
		{"online resource", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExtractPageCount(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractPageCount(%q) = (%d, %v), want (%d, %v)",
					tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// Re-extracting from a formatted count must return the same count,
// whatever unit spelling the catalogue used.
func TestExtractPageCount_Idempotent(t *testing.T) {
	for _, n := range []int{1, 42, 188, 1024} {
		for _, format := range []string{"%d S.", "%d p.", "%d Seiten", "%d pages", "%d"} {
			text := fmt.Sprintf(format, n)
			got, ok := ExtractPageCount(text)
			if !ok || got != n {
				t.Errorf("ExtractPageCount(%q) = (%d, %v), want (%d, true)", text, got, ok, n)
			}
		}
	}
}

func TestPagesMatch(t *testing.T) {
	tests := []struct {
		name        string
		a, b        string
		tolerance   float64
		wantMatches bool
		wantRelDiff float64
		wantOK      bool
	}{
		{
			name:        "close counts within tolerance",
			a:           "188 S.",
			b:           "192 p.",
			tolerance:   DefaultPagesTolerance,
			wantMatches: true,
			wantRelDiff: 4.0 / 190.0,
			wantOK:      true,
		},
		{
			name:        "far apart counts",
			a:           "100 S.",
			b:           "150 p.",
			tolerance:   0.20,
			wantMatches: false,
			wantRelDiff: 50.0 / 125.0,
			wantOK:      true,
		},
		{
			name:        "identical counts",
			a:           "224 S.",
			b:           "224 pages",
			tolerance:   DefaultPagesTolerance,
			wantMatches: true,
			wantRelDiff: 0,
			wantOK:      true,
		},
		{
			name:      "left side unparseable",
			a:         "Getr. Zählung",
			b:         "188 S.",
			tolerance: DefaultPagesTolerance,
			wantOK:    false,
		},
		{
			name:      "both sides empty",
			a:         "",
			b:         "",
			tolerance: DefaultPagesTolerance,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, relDiff, ok := PagesMatch(tt.a, tt.b, tt.tolerance)
			if ok != tt.wantOK {
				t.Fatalf("PagesMatch(%q, %q) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if matches != tt.wantMatches {
				t.Errorf("PagesMatch(%q, %q) matches = %v, want %v", tt.a, tt.b, matches, tt.wantMatches)
			}
			if math.Abs(relDiff-tt.wantRelDiff) > 1e-9 {
				t.Errorf("PagesMatch(%q, %q) relDiff = %.4f, want %.4f", tt.a, tt.b, relDiff, tt.wantRelDiff)
			}
		})
	}
}
