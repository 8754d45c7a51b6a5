// Package record defines the bibliographic record shapes flowing through
// the fusion pipeline: the trusted VDEh source record, the candidate
// variants retrieved from the external catalogues, and the provenanced
// fusion result.
package record

import "strings"

// SourceRecord is the trusted VDEh record being enriched. Populated
// fields are never overwritten during fusion, only confirmed or left
// untouched.
type SourceRecord struct {
	ID        string `json:"id" parquet:"id"`
	Title     string `json:"title" parquet:"title"`
	Authors   string `json:"authors" parquet:"authors"`
	Year      int    `json:"year" parquet:"year"`
	Publisher string `json:"publisher" parquet:"publisher"`
	Pages     string `json:"pages" parquet:"pages"`
	ISBN      string `json:"isbn" parquet:"isbn"`
	ISSN      string `json:"issn" parquet:"issn"`
	Language  string `json:"language" parquet:"language"` // ISO 639 hint, e.g. "ger", "eng"
}

// CandidateVariant is one record retrieved from an external catalogue
// via one retrieval strategy. Same field shape as SourceRecord minus the
// identifier and language hint.
type CandidateVariant struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
	Pages     string `json:"pages"`
	ISBN      string `json:"isbn"`
	ISSN      string `json:"issn"`
}

// Empty reports whether the variant carries no data at all. An empty
// variant is treated as "not available" by the fusion engine.
func (v *CandidateVariant) Empty() bool {
	if v == nil {
		return true
	}
	return v.Title == "" && v.Authors == "" && v.Year == 0 &&
		v.Publisher == "" && v.Pages == "" && v.ISBN == "" && v.ISSN == ""
}

// CleanString normalizes the many ways upstream data encodes "no value"
// (empty string, whitespace, pandas NaN leftovers) to the single absent
// representation: the empty string. All source and variant construction
// goes through this.
func CleanString(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "<na>", "nat":
		return ""
	}
	return s
}

// CleanYear normalizes a year value; 0 means absent. Implausible years
// are dropped rather than carried as garbage.
func CleanYear(y int) int {
	if y < 1000 || y > 2100 {
		return 0
	}
	return y
}
