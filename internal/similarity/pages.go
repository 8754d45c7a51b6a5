package similarity

import (
	"regexp"
	"strconv"
)

// DefaultPagesTolerance is the relative page-count difference accepted
// as a match.
const DefaultPagesTolerance = 0.10

var (
	// digits followed by a page-unit token: "188 S.", "352 p.", "200 pages", "415 Seiten"
	pagesUnitRe = regexp.MustCompile(`(?i)(\d+)\s*(?:S\.|Seiten|pages|p\.)`)
	// digits at the end of the extent string
	pagesTailRe = regexp.MustCompile(`(\d+)\s*$`)
	// digits before a comma or colon: "188, 23 cm" style subdivisions
	pagesSepRe = regexp.MustCompile(`(\d+)\s*[,:]`)
)

// ExtractPageCount parses a free-text extent string ("XII, 188 S.",
// "352 p.") into a page count. Patterns are tried in order of
// reliability; of all numbers matched by the first pattern that hits,
// the largest wins, so Roman-numeral front matter counted in a leading
// group never shadows the actual page count. The second return value is
// false when no digits were found.
func ExtractPageCount(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	for _, re := range []*regexp.Regexp{pagesUnitRe, pagesTailRe, pagesSepRe} {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		largest := 0
		found := false
		for _, m := range matches {
			n, err := strconv.Atoi(m[1])
			if err != nil || n <= 0 {
				continue
			}
			if n > largest {
				largest = n
			}
			found = true
		}
		if found {
			return largest, true
		}
	}

	return 0, false
}

// PagesMatch compares two extent strings within a relative tolerance.
// ok is false when either side fails to parse to a page count; in that
// case the comparison carries no signal and must not cause a rejection.
func PagesMatch(a, b string, tolerance float64) (matches bool, relDiff float64, ok bool) {
	n1, ok1 := ExtractPageCount(a)
	n2, ok2 := ExtractPageCount(b)
	if !ok1 || !ok2 {
		return false, 0, false
	}

	avg := float64(n1+n2) / 2.0
	diff := float64(n1 - n2)
	if diff < 0 {
		diff = -diff
	}
	relDiff = diff / avg

	return relDiff <= tolerance, relDiff, true
}
