package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func enrichedResult() record.FusionResult {
	pagesDiff := 0.021
	return record.FusionResult{
		Title:           "Stahlbau Grundlagen",
		TitleTag:        record.TagConfirmed,
		Authors:         "Müller, Hans",
		AuthorsTag:      record.TagSource,
		Year:            1998,
		YearTag:         record.TagConfirmed,
		ISBN:            "3-540-12345-6",
		ISBNTag:         record.TagVariant(record.DNBID),
		Conflicts:       map[string]record.FieldConflict{"publisher": {Source: "a", Candidate: "b"}},
		Confirmations:   []string{"title", "year"},
		Reasoning:       "KI Entscheidung: Variante A gewaehlt.",
		SelectedVariant: record.DNBID,
		TitleSimilarity: 1.0,
		PagesDiff:       &pagesDiff,
	}
}

func TestStoreSaveAndHas(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("vdeh-0001", enrichedResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	exists, err := store.Has("vdeh-0001")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !exists {
		t.Error("saved result not found")
	}

	exists, err = store.Has("vdeh-9999")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if exists {
		t.Error("unknown identifier reported as present")
	}
}

func TestStoreSaveIsUpsert(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("vdeh-0001", enrichedResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save("vdeh-0001", record.PassThrough(record.SourceRecord{ID: "vdeh-0001", Title: "x"})); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want upsert to keep one row", n)
	}
}

func TestStoreSaveFailure(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveFailure("vdeh-0007", "panic while merging"); err != nil {
		t.Fatalf("SaveFailure: %v", err)
	}

	exists, err := store.Has("vdeh-0007")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !exists {
		t.Error("failure row should block a resume retry")
	}
}

func TestSummarize(t *testing.T) {
	store := openTestStore(t)

	// Two enriched, one rejected, one untouched passthrough, one failed.
	if err := store.Save("r1", enrichedResult()); err != nil {
		t.Fatal(err)
	}

	second := enrichedResult()
	second.SelectedVariant = record.LoCTitleYear
	second.ISBNTag = record.TagVariant(record.LoCTitleYear)
	if err := store.Save("r2", second); err != nil {
		t.Fatal(err)
	}

	rejected := record.PassThrough(record.SourceRecord{ID: "r3", Title: "Korrosionsschutz"})
	rejected.MatchRejected = true
	rejected.RejectionReason = "Titel-Aehnlichkeit 0.12 unter 0.50"
	if err := store.Save("r3", rejected); err != nil {
		t.Fatal(err)
	}

	if err := store.Save("r4", record.PassThrough(record.SourceRecord{ID: "r4", Title: "Ohne Kandidaten"})); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveFailure("r5", "bad data"); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if summary.TotalRecords != 5 {
		t.Errorf("TotalRecords = %d, want 5", summary.TotalRecords)
	}
	if summary.Enriched != 2 || summary.Rejected != 1 || summary.NoData != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.VariantCounts["dnb_id"] != 1 || summary.VariantCounts["loc_title_year"] != 1 {
		t.Errorf("VariantCounts = %v", summary.VariantCounts)
	}
	if summary.FieldSources["isbn"]["dnb_id"] != 1 {
		t.Errorf("FieldSources[isbn] = %v", summary.FieldSources["isbn"])
	}
	if summary.FieldSources["title"]["confirmed"] != 2 {
		t.Errorf("FieldSources[title] = %v", summary.FieldSources["title"])
	}
}

func TestWriteSummaryYAML(t *testing.T) {
	store := openTestStore(t)
	if err := store.Save("r1", enrichedResult()); err != nil {
		t.Fatal(err)
	}
	summary, err := store.Summarize()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "summary.yaml")
	info := RunInfo{Provider: "ollama", Model: "llama3.3:70b", DatasetPath: "records.parquet", Concurrency: 1}
	if err := WriteSummaryYAML(path, info, summary); err != nil {
		t.Fatalf("WriteSummaryYAML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"provider: ollama",
		"model: llama3.3:70b",
		"dataset_path: records.parquet",
		"total_records: 1",
		"enriched: 1",
		"variant_counts:",
		"timestamp:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary YAML missing %q:\n%s", want, text)
		}
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") should fail")
	}
}
