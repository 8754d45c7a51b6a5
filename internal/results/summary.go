package results

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Summary aggregates a finished (or partial) run.
type Summary struct {
	TotalRecords int `yaml:"total_records"`
	Enriched     int `yaml:"enriched"`
	Rejected     int `yaml:"rejected"`
	NoData       int `yaml:"no_data"`
	Failed       int `yaml:"failed"`

	// VariantCounts counts how often each (catalogue, strategy) slot won.
	VariantCounts map[string]int `yaml:"variant_counts"`

	// FieldSources maps field name to source-tag distribution.
	FieldSources map[string]map[string]int `yaml:"field_sources"`
}

// Summarize computes the run summary from the store.
func (s *Store) Summarize() (*Summary, error) {
	summary := &Summary{
		VariantCounts: make(map[string]int),
		FieldSources:  make(map[string]map[string]int),
	}

	rows, err := s.db.Query(`
		SELECT status, match_rejected, selected_variant,
			title_source, authors_source, year_source, publisher_source,
			pages_source, isbn_source, issn_source
		FROM fusion_results`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	fieldNames := []string{"title", "authors", "year", "publisher", "pages", "isbn", "issn"}

	for rows.Next() {
		var status string
		var rejected bool
		var variant sql.NullString
		tags := make([]sql.NullString, len(fieldNames))
		dest := []interface{}{&status, &rejected, &variant}
		for i := range tags {
			dest = append(dest, &tags[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		summary.TotalRecords++

		switch {
		case status == "failed":
			summary.Failed++
			continue
		case rejected:
			summary.Rejected++
		case variant.Valid && variant.String != "":
			summary.Enriched++
			summary.VariantCounts[variant.String]++
		default:
			summary.NoData++
		}

		for i, field := range fieldNames {
			if !tags[i].Valid || tags[i].String == "" {
				continue
			}
			if summary.FieldSources[field] == nil {
				summary.FieldSources[field] = make(map[string]int)
			}
			summary.FieldSources[field][tags[i].String]++
		}
	}

	return summary, rows.Err()
}

// RunInfo describes the configuration a run used; stored alongside the
// summary for reproducibility.
type RunInfo struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	DatasetPath string `yaml:"dataset_path"`
	Concurrency int    `yaml:"concurrency"`
	Timestamp   string `yaml:"timestamp"`
}

type summaryFile struct {
	Config  RunInfo  `yaml:"config"`
	Summary *Summary `yaml:"summary"`
}

// WriteSummaryYAML saves the run summary as a YAML artifact.
func WriteSummaryYAML(path string, info RunInfo, summary *Summary) error {
	if info.Timestamp == "" {
		info.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	data, err := yaml.Marshal(&summaryFile{Config: info, Summary: summary})
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}
