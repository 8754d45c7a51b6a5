package fusion

import (
	"fmt"
	"strings"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
)

// BuildPrompt renders the arbitration prompt: the source record plus all
// available candidate variants labeled with their fixed letters, and the
// decision rules. Unavailable slots are omitted entirely.
func BuildPrompt(src record.SourceRecord, variants map[record.VariantKey]*record.CandidateVariant) string {
	var b strings.Builder

	b.WriteString(`Du bist ein erfahrener Bibliothekar. Prüfe welche Katalog-Variante am besten zum VDEh-Datensatz passt oder ob keine passt.

REGELN:
1. ENTSCHEIDUNGSKRITERIEN: Titel + Autoren dominieren. Jahr ±2 oder fehlend ist OK. Verlag tolerant.
2. SCHREIBWEISEN: Ignoriere Gross-/Kleinschreibung, geringfuegige Varianten, Abkuerzungen.
3. PRIORITAET: ID-basierte Varianten (ISBN/ISSN) vor Titel/Autor vor Titel/Jahr.
4. KATALOG: Bevorzuge den Katalog, der zur Sprache des Datensatzes passt`)
	if src.Language != "" {
		fmt.Fprintf(&b, " (Sprache: %s)", src.Language)
	}
	b.WriteString(`.
5. EIN 'KEINE' nur bei klar unterschiedlichen Werken (Titel UND Autoren deutlich verschieden).
6. Fehlende Felder alleine NIE als Ablehnungsgrund.

DATENSATZ VDEH:
`)
	b.WriteString(formatSource(src))

	var offered []string
	for _, key := range record.VariantOrder {
		v, ok := variants[key]
		if !ok || v.Empty() {
			continue
		}
		offered = append(offered, key.Letter())
		fmt.Fprintf(&b, "\nVARIANTE %s (%s):\n%s", key.Letter(), key.Description(), formatVariant(v))
	}

	fmt.Fprintf(&b, "\nAntworte NUR mit einem dieser Formate:\n")
	for _, letter := range offered {
		fmt.Fprintf(&b, "%s - [Begruendung]\n", letter)
	}
	b.WriteString("KEINE - [Begruendung warum keine passt]")

	return b.String()
}

func formatSource(src record.SourceRecord) string {
	return formatFields(src.Title, src.Authors, src.Year, src.Publisher, src.Pages, src.ISBN, src.ISSN)
}

func formatVariant(v *record.CandidateVariant) string {
	return formatFields(v.Title, v.Authors, v.Year, v.Publisher, v.Pages, v.ISBN, v.ISSN)
}

func formatFields(title, authors string, year int, publisher, pages, isbn, issn string) string {
	yearStr := "nicht vorhanden"
	if year != 0 {
		yearStr = fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf(
		"- Titel: %s\n- Autoren: %s\n- Jahr: %s\n- Verlag: %s\n- Umfang: %s\n- ISBN: %s\n- ISSN: %s\n",
		orMissing(title), orMissing(authors), yearStr,
		orMissing(publisher), orMissing(pages), orMissing(isbn), orMissing(issn))
}

func orMissing(s string) string {
	if s == "" {
		return "nicht vorhanden"
	}
	return s
}
