package record

import "testing"

func TestCleanString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Stahlbau", "Stahlbau"},
		{"  Stahlbau  ", "Stahlbau"},
		{"", ""},
		{"   ", ""},
		{"nan", ""},
		{"NaN", ""},
		{"None", ""},
		{"NULL", ""},
		{"<NA>", ""},
		{"NaT", ""},
		{"nano", "nano"}, // only exact placeholder tokens are dropped
	}

	for _, tt := range tests {
		if got := CleanString(tt.input); got != tt.want {
			t.Errorf("CleanString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanYear(t *testing.T) {
	tests := []struct {
		input, want int
	}{
		{1998, 1998},
		{1000, 1000},
		{2100, 2100},
		{999, 0},
		{2101, 0},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := CleanYear(tt.input); got != tt.want {
			t.Errorf("CleanYear(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCandidateVariantEmpty(t *testing.T) {
	var nilVariant *CandidateVariant
	if !nilVariant.Empty() {
		t.Error("nil variant should be empty")
	}
	if !(&CandidateVariant{}).Empty() {
		t.Error("zero variant should be empty")
	}
	if (&CandidateVariant{Title: "Stahlbau"}).Empty() {
		t.Error("variant with a title is not empty")
	}
	if (&CandidateVariant{Year: 1998}).Empty() {
		t.Error("variant with a year is not empty")
	}
}

func TestVariantLetters(t *testing.T) {
	wantLetters := map[VariantKey]string{
		DNBID:          "A",
		DNBTitleAuthor: "B",
		DNBTitleYear:   "C",
		LoCID:          "D",
		LoCTitleAuthor: "E",
		LoCTitleYear:   "F",
	}

	for key, letter := range wantLetters {
		if got := key.Letter(); got != letter {
			t.Errorf("%s.Letter() = %q, want %q", key, got, letter)
		}
		back, ok := VariantForLetter(letter)
		if !ok || back != key {
			t.Errorf("VariantForLetter(%q) = (%q, %v), want %q", letter, back, ok, key)
		}
	}

	if _, ok := VariantForLetter("G"); ok {
		t.Error("VariantForLetter accepted an unknown letter")
	}
}

func TestVariantOrderMatchesLetters(t *testing.T) {
	for i, key := range VariantOrder {
		want := string(rune('A' + i))
		if key.Letter() != want {
			t.Errorf("VariantOrder[%d] = %s with letter %q, want %q", i, key, key.Letter(), want)
		}
	}
}

func TestVariantClassification(t *testing.T) {
	if DNBID.Catalogue() != "dnb" || LoCTitleYear.Catalogue() != "loc" {
		t.Error("catalogue classification wrong")
	}
	if DNBID.Strategy() != "id" || LoCTitleAuthor.Strategy() != "title_author" {
		t.Error("strategy classification wrong")
	}
	for _, key := range VariantOrder {
		wantTY := key == DNBTitleYear || key == LoCTitleYear
		if key.TitleYear() != wantTY {
			t.Errorf("%s.TitleYear() = %v", key, key.TitleYear())
		}
	}
}

func TestPassThrough(t *testing.T) {
	src := SourceRecord{
		ID:    "vdeh-0001",
		Title: "Stahlbau Grundlagen",
		Year:  1998,
	}
	r := PassThrough(src)

	if r.Title != src.Title || r.TitleTag != TagSource {
		t.Errorf("title = %q tag %q", r.Title, r.TitleTag)
	}
	if r.Year != 1998 || r.YearTag != TagSource {
		t.Errorf("year = %d tag %q", r.Year, r.YearTag)
	}
	// Tag if and only if value.
	if r.Authors != "" || r.AuthorsTag != TagNone {
		t.Errorf("authors = %q tag %q, want empty untagged", r.Authors, r.AuthorsTag)
	}
	if r.MatchRejected || r.SelectedVariant != "" {
		t.Errorf("passthrough carries decision state: %+v", r)
	}
}
