package fusion

import (
	"fmt"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
	"github.com/vdeh-bibliothek/bibfusion/internal/similarity"
)

// validation carries the numeric checks run against a model-selected
// candidate; it is the second line of defense after arbitration, and its
// verdict overrides the model's choice.
type validation struct {
	ok              bool
	reason          string
	titleSimilarity float64
	pagesDiff       *float64
}

// validate applies the hard numeric guards: title similarity floor, year
// tolerance and page-count tolerance. A missing field on either side
// never causes rejection by itself; malformed values simply fail to
// parse and fall through as a missing signal.
func (e *Engine) validate(src record.SourceRecord, cand *record.CandidateVariant) validation {
	v := validation{ok: true}

	if src.Title != "" && cand.Title != "" {
		v.titleSimilarity = similarity.TitleSimilarity(src.Title, cand.Title)
		if v.titleSimilarity < e.cfg.ValidatorTitleFloor {
			v.ok = false
			v.reason = fmt.Sprintf("Titel-Aehnlichkeit %.2f unter %.2f", v.titleSimilarity, e.cfg.ValidatorTitleFloor)
			return v
		}
	}

	if src.Year != 0 && cand.Year != 0 {
		diff := src.Year - cand.Year
		if diff < 0 {
			diff = -diff
		}
		if diff > e.cfg.ValidatorYearTolerance {
			v.ok = false
			v.reason = fmt.Sprintf("Jahresdifferenz %d ueber ±%d", diff, e.cfg.ValidatorYearTolerance)
			return v
		}
	}

	if _, relDiff, ok := similarity.PagesMatch(src.Pages, cand.Pages, e.cfg.ValidatorPagesTolerance); ok {
		v.pagesDiff = &relDiff
		if relDiff > e.cfg.ValidatorPagesTolerance {
			v.ok = false
			v.reason = fmt.Sprintf("Seitenzahl-Abweichung %.0f%% ueber %.0f%%", relDiff*100, e.cfg.ValidatorPagesTolerance*100)
			return v
		}
	}

	return v
}
