package record

// VariantKey identifies one of the six (catalogue, strategy) retrieval
// slots a candidate can come from.
type VariantKey string

// The six variant slots, in the fixed A-F prompt order. The order
// encodes the preference DNB before LoC and, per catalogue, identifier
// lookup before title/author before title/year.
const (
	DNBID          VariantKey = "dnb_id"
	DNBTitleAuthor VariantKey = "dnb_title_author"
	DNBTitleYear   VariantKey = "dnb_title_year"
	LoCID          VariantKey = "loc_id"
	LoCTitleAuthor VariantKey = "loc_title_author"
	LoCTitleYear   VariantKey = "loc_title_year"
)

// VariantOrder is the canonical slot ordering used for prompt labels and
// deterministic iteration.
var VariantOrder = []VariantKey{
	DNBID, DNBTitleAuthor, DNBTitleYear,
	LoCID, LoCTitleAuthor, LoCTitleYear,
}

var variantLetters = map[VariantKey]string{
	DNBID:          "A",
	DNBTitleAuthor: "B",
	DNBTitleYear:   "C",
	LoCID:          "D",
	LoCTitleAuthor: "E",
	LoCTitleYear:   "F",
}

// Letter returns the prompt label for the variant slot ("A".."F").
func (k VariantKey) Letter() string {
	return variantLetters[k]
}

// VariantForLetter maps a prompt label back to its slot.
func VariantForLetter(letter string) (VariantKey, bool) {
	for key, l := range variantLetters {
		if l == letter {
			return key, true
		}
	}
	return "", false
}

// Catalogue returns "dnb" or "loc".
func (k VariantKey) Catalogue() string {
	switch k {
	case DNBID, DNBTitleAuthor, DNBTitleYear:
		return "dnb"
	case LoCID, LoCTitleAuthor, LoCTitleYear:
		return "loc"
	}
	return ""
}

// Strategy returns the retrieval strategy of the slot.
func (k VariantKey) Strategy() string {
	switch k {
	case DNBID, LoCID:
		return "id"
	case DNBTitleAuthor, LoCTitleAuthor:
		return "title_author"
	case DNBTitleYear, LoCTitleYear:
		return "title_year"
	}
	return ""
}

// TitleYear reports whether the slot uses the title+year strategy, the
// least reliable one. Title-year candidates never reach arbitration
// un-gated.
func (k VariantKey) TitleYear() bool {
	return k == DNBTitleYear || k == LoCTitleYear
}

// Description returns a human-readable label used in prompts and logs.
func (k VariantKey) Description() string {
	switch k {
	case DNBID:
		return "DNB, ID-basiert (ISBN/ISSN)"
	case DNBTitleAuthor:
		return "DNB, Titel/Autor-basiert"
	case DNBTitleYear:
		return "DNB, Titel/Jahr-basiert"
	case LoCID:
		return "LoC, ID-basiert (ISBN/ISSN)"
	case LoCTitleAuthor:
		return "LoC, Titel/Autor-basiert"
	case LoCTitleYear:
		return "LoC, Titel/Jahr-basiert"
	}
	return string(k)
}
