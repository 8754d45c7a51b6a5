// Package results persists fusion results incrementally and summarizes
// finished runs.
package results

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
)

// Store is a SQLite-backed result sink. Each result is upserted
// immediately after its record is merged, so an interrupted run keeps
// everything processed so far and can be resumed.
type Store struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS fusion_results (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL DEFAULT 'ok',
	error TEXT,
	title TEXT,
	title_source TEXT,
	authors TEXT,
	authors_source TEXT,
	year INTEGER,
	year_source TEXT,
	publisher TEXT,
	publisher_source TEXT,
	pages TEXT,
	pages_source TEXT,
	isbn TEXT,
	isbn_source TEXT,
	issn TEXT,
	issn_source TEXT,
	conflicts TEXT,
	confirmations TEXT,
	reasoning TEXT,
	selected_variant TEXT,
	match_rejected INTEGER NOT NULL DEFAULT 0,
	rejection_reason TEXT,
	title_similarity REAL,
	pages_diff REAL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (and if needed initializes) a result store at the given
// database path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("result store requires a non-empty database path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db at %s: %w", path, err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create fusion_results table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts one fusion result under its record identifier.
func (s *Store) Save(id string, res record.FusionResult) error {
	conflicts, err := marshalOrNil(res.Conflicts, len(res.Conflicts) > 0)
	if err != nil {
		return fmt.Errorf("failed to marshal conflicts for %s: %w", id, err)
	}
	confirmations, err := marshalOrNil(res.Confirmations, len(res.Confirmations) > 0)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmations for %s: %w", id, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO fusion_results (
			id, status, error,
			title, title_source, authors, authors_source,
			year, year_source, publisher, publisher_source,
			pages, pages_source, isbn, isbn_source, issn, issn_source,
			conflicts, confirmations, reasoning, selected_variant,
			match_rejected, rejection_reason, title_similarity, pages_diff
		) VALUES (?, 'ok', NULL, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		nullable(res.Title), nullable(string(res.TitleTag)),
		nullable(res.Authors), nullable(string(res.AuthorsTag)),
		nullableInt(res.Year), nullable(string(res.YearTag)),
		nullable(res.Publisher), nullable(string(res.PublisherTag)),
		nullable(res.Pages), nullable(string(res.PagesTag)),
		nullable(res.ISBN), nullable(string(res.ISBNTag)),
		nullable(res.ISSN), nullable(string(res.ISSNTag)),
		conflicts, confirmations,
		nullable(res.Reasoning), nullable(string(res.SelectedVariant)),
		res.MatchRejected, nullable(res.RejectionReason),
		res.TitleSimilarity, res.PagesDiff,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for %s: %w", id, err)
	}
	return nil
}

// SaveFailure records a record whose merge raised an unexpected error.
// The record stays in the store as unenriched so the run total adds up
// and a resume does not retry it silently.
func (s *Store) SaveFailure(id string, cause string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO fusion_results (id, status, error) VALUES (?, 'failed', ?)`,
		id, cause,
	)
	if err != nil {
		return fmt.Errorf("failed to save failure for %s: %w", id, err)
	}
	return nil
}

// Has reports whether a result for the identifier already exists.
func (s *Store) Has(id string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM fusion_results WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for existing result %s: %w", id, err)
	}
	return true, nil
}

// Count returns the number of stored results.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fusion_results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return n, nil
}

func marshalOrNil(v interface{}, present bool) (interface{}, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}
