package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vdeh-bibliothek/bibfusion/internal/results"
)

func newReportCmd() *cobra.Command {
	var dbPath string
	var summaryPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a fusion result store",
		Example: `  # Print the summary of a finished run
  bibfusion report --db ./fused.db

  # Also save it as YAML
  bibfusion report --db ./fused.db --summary ./summary.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := results.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := store.Summarize()
			if err != nil {
				return err
			}
			printSummary(summary)

			if summaryPath != "" {
				if err := results.WriteSummaryYAML(summaryPath, results.RunInfo{}, summary); err != nil {
					return err
				}
				fmt.Printf("\nSummary saved to: %s\n", summaryPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "fusion_results.db", "Path to the SQLite result store")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "Write a YAML summary to this path")

	return cmd
}

func printSummary(summary *results.Summary) {
	fmt.Println("\n========================================")
	fmt.Println("Fusion Summary")
	fmt.Println("========================================")
	fmt.Printf("Total Records:      %d\n", summary.TotalRecords)
	fmt.Printf("Enriched:           %d\n", summary.Enriched)
	fmt.Printf("Rejected:           %d\n", summary.Rejected)
	fmt.Printf("No External Data:   %d\n", summary.NoData)
	fmt.Printf("Failed:             %d\n", summary.Failed)

	if len(summary.VariantCounts) > 0 {
		fmt.Println("\nSelected Variants:")
		var variants []string
		for v := range summary.VariantCounts {
			variants = append(variants, v)
		}
		sort.Strings(variants)
		for _, v := range variants {
			fmt.Printf("  %s: %d\n", v, summary.VariantCounts[v])
		}
	}

	if len(summary.FieldSources) > 0 {
		fmt.Println("\nField Sources:")
		var fields []string
		for f := range summary.FieldSources {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			var tags []string
			for tag := range summary.FieldSources[f] {
				tags = append(tags, tag)
			}
			sort.Strings(tags)
			fmt.Printf("  %s:\n", f)
			for _, tag := range tags {
				fmt.Printf("    %s: %d\n", tag, summary.FieldSources[f][tag])
			}
		}
	}
	fmt.Println("========================================")
}
