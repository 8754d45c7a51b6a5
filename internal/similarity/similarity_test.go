package similarity

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and whitespace collapse",
			input: "  Stahlbau   Grundlagen  ",
			want:  "stahlbau grundlagen",
		},
		{
			name:  "umlaut digraph folding",
			input: "Werkstoffprüfung",
			want:  "werkstoffpruefung",
		},
		{
			name:  "sharp s folding",
			input: "Gießerei",
			want:  "giesserei",
		},
		{
			name:  "ampersand folds to und",
			input: "Eisen & Stahl",
			want:  "eisen und stahl",
		},
		{
			name:  "non-sort markers stripped",
			input: "¬Die¬ Roheisenindustrie",
			want:  "die roheisenindustrie",
		},
		{
			name:  "trailing punctuation stripped",
			input: "Korrosionsschutz.",
			want:  "korrosionsschutz",
		},
		{
			name:  "empty stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_FoldedVariantsCompareEqual(t *testing.T) {
	pairs := [][2]string{
		{"Werkstoffprüfung", "Werkstoffpruefung"},
		{"Eisen & Stahl", "Eisen und Stahl"},
		{"Härterei", "Haerterei"},
	}
	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Errorf("Normalize(%q)=%q and Normalize(%q)=%q should be equal",
				p[0], Normalize(p[0]), p[1], Normalize(p[1]))
		}
	}
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{
			name: "identical",
			a:    "Stahlbau Grundlagen",
			b:    "Stahlbau Grundlagen",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "case insensitive",
			a:    "STAHLBAU",
			b:    "stahlbau",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "near match with punctuation",
			a:    "Stahlbau Grundlagen",
			b:    "Stahlbau: Grundlagen",
			min:  0.90,
			max:  0.99,
		},
		{
			name: "different works",
			a:    "Korrosionsschutz",
			b:    "Werkstoffprüfung",
			min:  0.0,
			max:  0.40,
		},
		{
			name: "empty left",
			a:    "",
			b:    "Stahlbau",
			min:  0.0,
			max:  0.0,
		},
		{
			name: "empty right",
			a:    "Stahlbau",
			b:    "",
			min:  0.0,
			max:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleSimilarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("TitleSimilarity(%q, %q) = %.3f, want in [%.2f, %.2f]",
					tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestTitleSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"Stahlbau Grundlagen", "Stahlbau: Grundlagen"},
		{"Korrosionsschutz", "Werkstoffprüfung"},
		{"Powder metallurgy", "Influence of porosity on tribological properties"},
		{"a", "completely different and much longer"},
	}

	for _, p := range pairs {
		ab := TitleSimilarity(p[0], p[1])
		ba := TitleSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("TitleSimilarity not symmetric for (%q, %q): %.4f vs %.4f", p[0], p[1], ab, ba)
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"stahl", "stahl", 0},
		{"stahl", "stahlbau", 3},
	}

	for _, tt := range tests {
		got := levenshteinDistance([]rune(tt.s1), []rune(tt.s2))
		if got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}
