package similarity

import (
	"strconv"
	"strings"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
)

// CompareFields checks title, authors, year and publisher between the
// source record and a candidate. Fields populated on both sides are
// normalized and compared: equal values become confirmations, unequal
// ones conflicts. A field missing on either side appears in neither set;
// absence is not a conflict.
func CompareFields(src record.SourceRecord, cand record.CandidateVariant) (map[string]record.FieldConflict, []string) {
	conflicts := make(map[string]record.FieldConflict)
	var confirmations []string

	type pair struct {
		name      string
		src, cand string
		publisher bool
	}

	pairs := []pair{
		{name: "title", src: src.Title, cand: cand.Title},
		{name: "authors", src: src.Authors, cand: cand.Authors},
		{name: "year", src: yearString(src.Year), cand: yearString(cand.Year)},
		{name: "publisher", src: src.Publisher, cand: cand.Publisher, publisher: true},
	}

	for _, p := range pairs {
		if p.src == "" || p.cand == "" {
			continue
		}

		s, c := p.src, p.cand
		if p.publisher {
			s = trimPublisher(s)
			c = trimPublisher(c)
		}

		if Normalize(s) == Normalize(c) {
			confirmations = append(confirmations, p.name)
		} else {
			conflicts[p.name] = record.FieldConflict{Source: p.src, Candidate: p.cand}
		}
	}

	if len(conflicts) == 0 {
		conflicts = nil
	}
	return conflicts, confirmations
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// trimPublisher drops place/country annotations: everything after a
// colon and anything parenthesized. "Springer : Berlin" and
// "Springer (Berlin)" both compare as "Springer".
func trimPublisher(s string) string {
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	for {
		open := strings.Index(s, "(")
		if open < 0 {
			break
		}
		end := strings.Index(s[open:], ")")
		if end < 0 {
			s = s[:open]
			break
		}
		s = s[:open] + s[open+end+1:]
	}
	return strings.TrimSpace(s)
}
