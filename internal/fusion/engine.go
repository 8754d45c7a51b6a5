// Package fusion implements the per-record decision procedure that picks
// among up to six independently retrieved candidate variants, validates
// the pick, and merges it into the source record without ever
// overwriting trusted source data.
package fusion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
	"github.com/vdeh-bibliothek/bibfusion/internal/similarity"
)

// Arbiter is the decision service consulted when more than one plausible
// candidate exists. A hard failure (service unreachable after retries)
// propagates out of MergeRecord unchanged.
type Arbiter interface {
	Query(ctx context.Context, prompt string) (string, error)
}

// Config holds the engine thresholds. The title-year gate and the
// post-arbitration validator both use a 0.50 title floor, but for
// different reasons (acceptance gate vs safety net) and at different
// call sites, so they stay separate knobs.
type Config struct {
	// Title-year-only fallback gate.
	TitleAccept    float64 // accept outright at or above this similarity
	TitleRescue    float64 // accept in [TitleRescue, TitleAccept) only with a page-count match
	PagesTolerance float64 // relative page difference for the rescue signal

	// Post-arbitration validator.
	ValidatorTitleFloor     float64
	ValidatorYearTolerance  int
	ValidatorPagesTolerance float64
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		TitleAccept:             0.70,
		TitleRescue:             0.50,
		PagesTolerance:          similarity.DefaultPagesTolerance,
		ValidatorTitleFloor:     0.50,
		ValidatorYearTolerance:  2,
		ValidatorPagesTolerance: 0.20,
	}
}

// Engine fuses one source record with its candidate variants. Stateless
// across records; safe to reuse for a whole batch.
type Engine struct {
	arbiter Arbiter
	cfg     Config
}

// New creates a fusion engine.
func New(arbiter Arbiter, cfg Config) *Engine {
	return &Engine{arbiter: arbiter, cfg: cfg}
}

// MergeRecord runs the tiered decision policy for one record:
// availability filtering, the no-data shortcut, the similarity gate for
// title-year-only candidates, or arbitration plus independent
// validation, ending in an enrichment-only field merge. Every path
// returns exactly one well-formed result; only arbitration-transport
// failure returns an error.
func (e *Engine) MergeRecord(ctx context.Context, src record.SourceRecord, variants map[record.VariantKey]*record.CandidateVariant) (record.FusionResult, error) {
	available := availableVariants(variants)

	// No external data at all: pass the source through untouched.
	if len(available) == 0 {
		return record.PassThrough(src), nil
	}

	// Title-year matches are the least reliable strategy; when nothing
	// stronger is available they face a numeric gate instead of the
	// arbitration model.
	if onlyTitleYear(available) {
		return e.gateTitleYear(src, available), nil
	}

	prompt := BuildPrompt(src, available)
	response, err := e.arbiter.Query(ctx, prompt)
	if err != nil {
		return record.FusionResult{}, fmt.Errorf("arbitration failed for record %s: %w", src.ID, err)
	}

	choice := ParseChoice(response)
	if choice.None {
		result := record.PassThrough(src)
		result.MatchRejected = true
		result.RejectionReason = choice.Reason
		result.Reasoning = "KI: " + choice.Reason
		return result, nil
	}

	selected, ok := available[choice.Variant]
	if !ok {
		// The model named a slot it was never offered.
		result := record.PassThrough(src)
		result.MatchRejected = true
		result.RejectionReason = fmt.Sprintf("Modell waehlte nicht angebotene Variante %s", choice.Variant.Letter())
		result.Reasoning = "KI: " + result.RejectionReason
		return result, nil
	}

	// Independent numeric guards; the model's choice never overrides
	// them.
	val := e.validate(src, selected)
	if !val.ok {
		result := record.PassThrough(src)
		result.MatchRejected = true
		result.RejectionReason = val.reason
		result.Reasoning = fmt.Sprintf("Modell waehlte %s, Validierung fehlgeschlagen: %s", choice.Variant.Letter(), val.reason)
		result.TitleSimilarity = val.titleSimilarity
		result.PagesDiff = val.pagesDiff
		return result, nil
	}

	conflicts, confirmations := similarity.CompareFields(src, *selected)

	result := e.assign(src, choice.Variant, selected, confirmations)
	result.Conflicts = conflicts
	result.Confirmations = confirmations
	result.SelectedVariant = choice.Variant
	result.Reasoning = fmt.Sprintf("KI Entscheidung: Variante %s gewaehlt. %s", choice.Variant.Letter(), choice.Reason)
	result.TitleSimilarity = val.titleSimilarity
	result.PagesDiff = val.pagesDiff

	slog.Debug("Variant accepted",
		"record", src.ID,
		"variant", string(choice.Variant),
		"title_similarity", val.titleSimilarity,
		"conflicts", len(conflicts),
		"confirmations", len(confirmations))

	return result, nil
}

// availableVariants collapses the six-slot input to the subset actually
// carrying data. A variant with every field empty counts as absent.
func availableVariants(variants map[record.VariantKey]*record.CandidateVariant) map[record.VariantKey]*record.CandidateVariant {
	available := make(map[record.VariantKey]*record.CandidateVariant)
	for _, key := range record.VariantOrder {
		if v, ok := variants[key]; ok && !v.Empty() {
			available[key] = v
		}
	}
	return available
}

func onlyTitleYear(available map[record.VariantKey]*record.CandidateVariant) bool {
	for key := range available {
		if !key.TitleYear() {
			return false
		}
	}
	return true
}

// gateTitleYear applies the similarity gate to title-year-only
// candidates. When both catalogues delivered one, the better-scoring
// title is gated. Below the accept threshold a corroborating page count
// can rescue a borderline title down to the rescue floor; below that the
// record is rejected.
func (e *Engine) gateTitleYear(src record.SourceRecord, available map[record.VariantKey]*record.CandidateVariant) record.FusionResult {
	var bestKey record.VariantKey
	var best *record.CandidateVariant
	bestSim := -1.0

	for _, key := range record.VariantOrder {
		v, ok := available[key]
		if !ok {
			continue
		}
		sim := similarity.TitleSimilarity(src.Title, v.Title)
		if sim > bestSim {
			bestKey, best, bestSim = key, v, sim
		}
	}

	pagesMatched, relDiff, pagesOK := similarity.PagesMatch(src.Pages, best.Pages, e.cfg.PagesTolerance)

	accepted := bestSim >= e.cfg.TitleAccept ||
		(bestSim >= e.cfg.TitleRescue && pagesMatched)

	if !accepted {
		result := record.PassThrough(src)
		result.MatchRejected = true
		result.TitleSimilarity = bestSim
		reason := fmt.Sprintf("Titel/Jahr-Treffer verworfen: Aehnlichkeit %.2f unter %.2f", bestSim, e.cfg.TitleAccept)
		if pagesOK {
			result.PagesDiff = &relDiff
			reason += fmt.Sprintf(", Seitenzahl-Abweichung %.0f%%", relDiff*100)
		}
		result.RejectionReason = reason
		result.Reasoning = reason
		return result
	}

	result := e.assign(src, bestKey, best, nil)
	result.SelectedVariant = bestKey
	result.TitleSimilarity = bestSim
	if pagesOK {
		result.PagesDiff = &relDiff
	}
	result.Reasoning = fmt.Sprintf("Titel/Jahr-Treffer akzeptiert: Aehnlichkeit %.2f", bestSim)
	return result
}

// assign performs the enrichment-only merge: populated source fields are
// kept (tagged confirmed when the candidate agrees, source otherwise),
// empty source fields are filled from the candidate and tagged with its
// variant key, and fields empty on both sides stay null with no tag.
// This rule holds for every field independently.
func (e *Engine) assign(src record.SourceRecord, key record.VariantKey, cand *record.CandidateVariant, confirmations []string) record.FusionResult {
	confirmed := make(map[string]bool, len(confirmations))
	for _, f := range confirmations {
		confirmed[f] = true
	}
	tag := record.TagVariant(key)

	var result record.FusionResult
	result.Title, result.TitleTag = assignField(src.Title, cand.Title, confirmed["title"], tag)
	result.Authors, result.AuthorsTag = assignField(src.Authors, cand.Authors, confirmed["authors"], tag)
	result.Publisher, result.PublisherTag = assignField(src.Publisher, cand.Publisher, confirmed["publisher"], tag)
	result.Pages, result.PagesTag = assignField(src.Pages, cand.Pages, confirmed["pages"], tag)
	result.ISBN, result.ISBNTag = assignField(src.ISBN, cand.ISBN, confirmed["isbn"], tag)
	result.ISSN, result.ISSNTag = assignField(src.ISSN, cand.ISSN, confirmed["issn"], tag)

	switch {
	case src.Year != 0:
		result.Year = src.Year
		if confirmed["year"] {
			result.YearTag = record.TagConfirmed
		} else {
			result.YearTag = record.TagSource
		}
	case cand.Year != 0:
		result.Year = cand.Year
		result.YearTag = tag
	}

	return result
}

func assignField(srcVal, candVal string, confirmed bool, tag record.SourceTag) (string, record.SourceTag) {
	switch {
	case srcVal != "":
		if confirmed {
			return srcVal, record.TagConfirmed
		}
		return srcVal, record.TagSource
	case candVal != "":
		return candVal, tag
	default:
		return "", record.TagNone
	}
}
