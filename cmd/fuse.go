package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vdeh-bibliothek/bibfusion/internal/arbiter"
	"github.com/vdeh-bibliothek/bibfusion/internal/batch"
	"github.com/vdeh-bibliothek/bibfusion/internal/config"
	"github.com/vdeh-bibliothek/bibfusion/internal/dataset"
	"github.com/vdeh-bibliothek/bibfusion/internal/fusion"
	"github.com/vdeh-bibliothek/bibfusion/internal/results"
)

func newFuseCmd() *cobra.Command {
	var (
		datasetPath string
		dbPath      string
		configPath  string
		summaryPath string
		provider    string
		model       string
		concurrency int
		limit       int
		resume      bool
	)

	cmd := &cobra.Command{
		Use:   "fuse",
		Short: "Fuse the enriched dataset into provenanced best records",
		Long: `Runs the fusion engine over every record of the enriched dataset.

Each record is merged with its available DNB/LoC candidate variants and
the result is written to the SQLite store immediately, so an interrupted
run can be resumed with --resume. An unreachable arbitration service
aborts the run instead of silently skipping enrichment for the rest of
the batch.`,
		Example: `  # Full run against a local Ollama
  bibfusion fuse --dataset ./data/enriched.parquet --db ./fused.db

  # Resume an interrupted run with Gemini arbitration
  bibfusion fuse --dataset ./data/enriched.parquet --db ./fused.db \
    --provider gemini --model gemini-2.0-flash --resume`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if provider != "" {
				cfg.Arbiter.Provider = provider
			}
			if model != "" {
				cfg.Arbiter.Model = model
			}
			if concurrency > 0 {
				cfg.Batch.Concurrency = concurrency
			}

			ctx := cmd.Context()

			client, err := newArbiterClient(cfg.Arbiter)
			if err != nil {
				return err
			}

			slog.Info("Probing arbitration service", "provider", cfg.Arbiter.Provider, "model", cfg.Arbiter.Model)
			if err := client.Ping(ctx); err != nil {
				return err
			}

			loader := dataset.NewLoader(datasetPath)
			var rows []dataset.Row
			if limit > 0 {
				rows, err = loader.LoadSample(limit)
			} else {
				rows, err = loader.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
			slog.Info("Dataset loaded", "records", len(rows))

			store, err := results.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			engine := fusion.New(client, cfg.Fusion.EngineConfig())
			driver := batch.New(engine, store, batch.Options{
				Concurrency:   cfg.Batch.Concurrency,
				ProgressEvery: cfg.Batch.ProgressEvery,
				Resume:        resume,
			})

			start := time.Now()
			stats, runErr := driver.Run(ctx, rows)
			slog.Info("Fusion run finished",
				"processed", stats.Processed,
				"skipped", stats.Skipped,
				"failed", stats.Failed,
				"elapsed", time.Since(start).Round(time.Second).String())

			summary, err := store.Summarize()
			if err != nil {
				return err
			}
			printSummary(summary)

			if summaryPath != "" {
				info := results.RunInfo{
					Provider:    cfg.Arbiter.Provider,
					Model:       cfg.Arbiter.Model,
					DatasetPath: datasetPath,
					Concurrency: cfg.Batch.Concurrency,
				}
				if err := results.WriteSummaryYAML(summaryPath, info, summary); err != nil {
					return err
				}
				fmt.Printf("\nSummary saved to: %s\n", summaryPath)
			}

			return runErr
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to enriched parquet or jsonl dataset (required)")
	cmd.Flags().StringVar(&dbPath, "db", "fusion_results.db", "Path to the SQLite result store")
	cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "Write a YAML run summary to this path")
	cmd.Flags().StringVar(&provider, "provider", "", "Arbitration provider: ollama or gemini (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Arbitration model (default from config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Worker count; 1 keeps the reference sequential behavior")
	cmd.Flags().IntVar(&limit, "limit", 0, "Process only the first N records (0 for all)")
	cmd.Flags().BoolVar(&resume, "resume", false, "Skip records already present in the result store")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func newArbiterClient(cfg config.ArbiterConfig) (*arbiter.Client, error) {
	var provider arbiter.Provider
	switch cfg.Provider {
	case "ollama":
		provider = arbiter.NewOllama(cfg.OllamaURL, time.Duration(cfg.TimeoutSec)*time.Second)
	case "gemini":
		provider = arbiter.NewGemini("")
	default:
		return nil, fmt.Errorf("unsupported arbitration provider: %s", cfg.Provider)
	}

	return arbiter.NewClient(provider, arbiter.Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		MaxRetries:  cfg.MaxRetries,
		SoftFail:    cfg.SoftFail,
	}), nil
}
