package fusion

import (
	"strings"
	"testing"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
)

func TestBuildPrompt(t *testing.T) {
	src := record.SourceRecord{
		ID:       "vdeh-0001",
		Title:    "Stahlbau Grundlagen",
		Authors:  "Müller, Hans",
		Year:     1998,
		Language: "ger",
	}
	variants := map[record.VariantKey]*record.CandidateVariant{
		record.DNBID:        {Title: "Stahlbau Grundlagen", Year: 1998, ISBN: "3-540-12345-6"},
		record.LoCTitleYear: {Title: "Stahlbau Grundlagen", Year: 1999},
	}

	prompt := BuildPrompt(src, variants)

	for _, want := range []string{
		"REGELN:",
		"DATENSATZ VDEH:",
		"Stahlbau Grundlagen",
		"(Sprache: ger)",
		"VARIANTE A (DNB, ID-basiert (ISBN/ISSN)):",
		"VARIANTE F (LoC, Titel/Jahr-basiert):",
		"A - [Begruendung]",
		"F - [Begruendung]",
		"KEINE - [Begruendung",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	for _, absent := range []string{"VARIANTE B", "VARIANTE C", "VARIANTE D", "VARIANTE E"} {
		if strings.Contains(prompt, absent) {
			t.Errorf("prompt offers unavailable %s", absent)
		}
	}
}

func TestBuildPrompt_MissingFieldsLabeled(t *testing.T) {
	src := record.SourceRecord{ID: "vdeh-0002", Title: "Stahlbau"}
	variants := map[record.VariantKey]*record.CandidateVariant{
		record.DNBID: {Title: "Stahlbau"},
	}

	prompt := BuildPrompt(src, variants)
	if !strings.Contains(prompt, "nicht vorhanden") {
		t.Error("missing fields should be labeled explicitly")
	}
	if strings.Contains(prompt, "Sprache:") {
		t.Error("language hint rendered without a language")
	}
}
