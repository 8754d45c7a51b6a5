package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vdeh-bibliothek/bibfusion/internal/dataset"
	"github.com/vdeh-bibliothek/bibfusion/internal/record"
	"github.com/vdeh-bibliothek/bibfusion/internal/similarity"
)

func newInspectCmd() *cobra.Command {
	var datasetPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect dataset records and their candidate variants",
		Long: `Prints source records with their available candidate variants and the
similarity signals the fusion engine would see, without calling the
arbitration service. Useful for threshold tuning and spot checks.`,
		Example: `  # Look at the first 5 records
  bibfusion inspect --dataset ./data/enriched.parquet --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := dataset.NewLoader(datasetPath)
			rows, err := loader.LoadSample(limit)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			for i := range rows {
				printRow(&rows[i])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func printRow(row *dataset.Row) {
	src := row.Source()
	variants := row.Variants()

	fmt.Printf("\n=== %s ===\n", src.ID)
	fmt.Printf("  Title:     %s\n", src.Title)
	fmt.Printf("  Authors:   %s\n", src.Authors)
	if src.Year != 0 {
		fmt.Printf("  Year:      %d\n", src.Year)
	}
	fmt.Printf("  Publisher: %s\n", src.Publisher)
	fmt.Printf("  Pages:     %s\n", src.Pages)

	if len(variants) == 0 {
		fmt.Println("  (no candidate variants)")
		return
	}

	for _, key := range record.VariantOrder {
		v, ok := variants[key]
		if !ok {
			continue
		}
		sim := similarity.TitleSimilarity(src.Title, v.Title)
		fmt.Printf("  [%s] %-18s sim=%.2f  %s\n", key.Letter(), string(key), sim, v.Title)
		if matched, relDiff, ok := similarity.PagesMatch(src.Pages, v.Pages, similarity.DefaultPagesTolerance); ok {
			fmt.Printf("       pages: %s vs %s (diff %.1f%%, match=%t)\n", src.Pages, v.Pages, relDiff*100, matched)
		}
	}
}
