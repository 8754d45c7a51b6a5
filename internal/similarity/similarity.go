// Package similarity provides the pure comparison primitives used by the
// fusion engine: string normalization, title similarity scoring,
// page-count extraction and field-level conflict detection.
package similarity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// markerReplacer strips non-sort and display marker characters that MARC
// exports leave in titles, and folds separator/umlaut variants so that
// German spellings compare equal.
var markerReplacer = strings.NewReplacer(
	"¬", "",
	"«", "",
	"»", "",
	"<<", "",
	">>", "",
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
	" & ", " und ",
	"&", " und ",
)

// Normalize prepares a string for equality-based field comparison:
// Unicode NFKC composition, lowercasing, marker stripping, separator and
// umlaut folding, whitespace collapsing and trailing punctuation
// removal. Deterministic and pure.
func Normalize(text string) string {
	s := norm.NFKC.String(text)
	s = strings.ToLower(strings.TrimSpace(s))
	s = markerReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, " .,;:/-")
	return s
}

// TitleSimilarity returns an edit-distance-based similarity ratio in
// [0,1] over lowercased, trimmed strings. Returns 0 if either input is
// empty. Symmetric, and 1.0 for identical non-empty inputs.
func TitleSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	distance := levenshteinDistance(ra, rb)
	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two rune
// slices using two rolling rows.
func levenshteinDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)

	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			curr[j] = min(deletion, min(insertion, substitution))
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
