package record

// SourceTag records where a fusion result field's value came from.
type SourceTag string

const (
	// TagSource marks a field kept from the source record untouched.
	TagSource SourceTag = "source"
	// TagConfirmed marks a source field corroborated by the selected
	// candidate.
	TagConfirmed SourceTag = "confirmed"
	// TagNone marks an absent field; a field has a tag if and only if it
	// has a value.
	TagNone SourceTag = ""
)

// TagVariant returns the tag for a field filled from a candidate slot.
func TagVariant(k VariantKey) SourceTag {
	return SourceTag(k)
}

// FieldConflict captures a field where source and selected candidate
// disagree after normalization.
type FieldConflict struct {
	Source    string `json:"source"`
	Candidate string `json:"candidate"`
}

// FusionResult is the output of one merge. Every bibliographic field is
// paired with a source tag; auxiliary attributes carry the audit trail
// of the decision.
type FusionResult struct {
	Title        string    `json:"title"`
	TitleTag     SourceTag `json:"title_source"`
	Authors      string    `json:"authors"`
	AuthorsTag   SourceTag `json:"authors_source"`
	Year         int       `json:"year"`
	YearTag      SourceTag `json:"year_source"`
	Publisher    string    `json:"publisher"`
	PublisherTag SourceTag `json:"publisher_source"`
	Pages        string    `json:"pages"`
	PagesTag     SourceTag `json:"pages_source"`
	ISBN         string    `json:"isbn"`
	ISBNTag      SourceTag `json:"isbn_source"`
	ISSN         string    `json:"issn"`
	ISSNTag      SourceTag `json:"issn_source"`

	Conflicts     map[string]FieldConflict `json:"conflicts,omitempty"`
	Confirmations []string                 `json:"confirmations,omitempty"`

	Reasoning       string     `json:"reasoning,omitempty"`
	SelectedVariant VariantKey `json:"selected_variant,omitempty"`
	MatchRejected   bool       `json:"match_rejected"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	// Scores used in the decision, kept for audit.
	TitleSimilarity float64  `json:"title_similarity"`
	PagesDiff       *float64 `json:"pages_diff,omitempty"`
}

// PassThrough builds a result that copies the source record verbatim,
// tagging every populated field "source". Used for the no-data and
// rejection paths.
func PassThrough(src SourceRecord) FusionResult {
	r := FusionResult{}
	r.Title, r.TitleTag = tagged(src.Title)
	r.Authors, r.AuthorsTag = tagged(src.Authors)
	if src.Year != 0 {
		r.Year = src.Year
		r.YearTag = TagSource
	}
	r.Publisher, r.PublisherTag = tagged(src.Publisher)
	r.Pages, r.PagesTag = tagged(src.Pages)
	r.ISBN, r.ISBNTag = tagged(src.ISBN)
	r.ISSN, r.ISSNTag = tagged(src.ISSN)
	return r
}

func tagged(v string) (string, SourceTag) {
	if v == "" {
		return "", TagNone
	}
	return v, TagSource
}
