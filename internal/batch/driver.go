// Package batch drives the fusion engine over a whole dataset: one
// record at a time by default, persisting every result immediately, and
// never letting one record's failure abort the run. The one exception is
// an unreachable arbitration service, which aborts loudly: continuing
// would silently degrade every remaining record to "no match".
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vdeh-bibliothek/bibfusion/internal/arbiter"
	"github.com/vdeh-bibliothek/bibfusion/internal/dataset"
	"github.com/vdeh-bibliothek/bibfusion/internal/record"
)

// Merger is the per-record fusion operation.
type Merger interface {
	MergeRecord(ctx context.Context, src record.SourceRecord, variants map[record.VariantKey]*record.CandidateVariant) (record.FusionResult, error)
}

// Sink persists one result per record identifier.
type Sink interface {
	Save(id string, res record.FusionResult) error
	SaveFailure(id string, cause string) error
	Has(id string) (bool, error)
}

// Options configures a run.
type Options struct {
	// Concurrency bounds the worker pool; 1 (the default) preserves the
	// reference sequential behavior. Record outcomes are independent
	// either way.
	Concurrency int

	// Resume skips records already present in the sink.
	Resume bool

	// ProgressEvery controls how often progress is logged.
	ProgressEvery int
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = 25
	}
	return o
}

// Stats counts what happened during a run.
type Stats struct {
	Processed int
	Skipped   int
	Failed    int
}

// Driver runs the batch loop.
type Driver struct {
	engine Merger
	sink   Sink
	opts   Options
}

// New creates a batch driver.
func New(engine Merger, sink Sink, opts Options) *Driver {
	return &Driver{
		engine: engine,
		sink:   sink,
		opts:   opts.withDefaults(),
	}
}

// Run merges every row and persists each result as soon as it exists.
// Per-record errors are caught, logged with the record identifier and
// stored as failures; arbiter.ErrUnavailable and context cancellation
// stop the run and are returned.
func (d *Driver) Run(ctx context.Context, rows []dataset.Row) (Stats, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		stats    Stats
		fatalErr error
	)
	setFatal := func(err error) {
		mu.Lock()
		if fatalErr == nil {
			fatalErr = err
		}
		mu.Unlock()
		cancel()
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, d.opts.Concurrency)

	for i := range rows {
		if runCtx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(idx int, row *dataset.Row) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if runCtx.Err() != nil {
				return
			}

			outcome, fatal := d.processRow(runCtx, row)
			if fatal != nil {
				setFatal(fatal)
				return
			}

			mu.Lock()
			switch outcome {
			case outcomeSkipped:
				stats.Skipped++
			case outcomeFailed:
				stats.Failed++
				stats.Processed++
			case outcomeOK:
				stats.Processed++
			}
			done := stats.Processed + stats.Skipped
			mu.Unlock()

			if done%d.opts.ProgressEvery == 0 {
				slog.Info("Fusion progress", "done", done, "total", len(rows))
			}
		}(i, &rows[i])
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if fatalErr != nil {
		return stats, fatalErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (d *Driver) processRow(ctx context.Context, row *dataset.Row) (outcome, error) {
	src := row.Source()
	if src.ID == "" {
		slog.Warn("Skipping row without identifier")
		return outcomeSkipped, nil
	}

	if d.opts.Resume {
		exists, err := d.sink.Has(src.ID)
		if err != nil {
			slog.Error("Resume check failed", "id", src.ID, "err", err)
		} else if exists {
			return outcomeSkipped, nil
		}
	}

	result, err := d.mergeSafely(ctx, src, row.Variants())
	if err != nil {
		if errors.Is(err, arbiter.ErrUnavailable) || errors.Is(err, context.Canceled) {
			return outcomeSkipped, err
		}
		// Any other per-record error: log, store as failed, move on.
		slog.Error("Record merge failed", "id", src.ID, "err", err)
		if saveErr := d.sink.SaveFailure(src.ID, err.Error()); saveErr != nil {
			slog.Error("Failed to persist failure", "id", src.ID, "err", saveErr)
		}
		return outcomeFailed, nil
	}

	if err := d.sink.Save(src.ID, result); err != nil {
		slog.Error("Failed to persist result", "id", src.ID, "err", err)
		return outcomeFailed, nil
	}
	return outcomeOK, nil
}

// mergeSafely converts a panic inside the engine into an ordinary
// per-record error, so one malformed record cannot take down the batch.
func (d *Driver) mergeSafely(ctx context.Context, src record.SourceRecord, variants map[record.VariantKey]*record.CandidateVariant) (result record.FusionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while merging record %s: %v", src.ID, r)
		}
	}()
	return d.engine.MergeRecord(ctx, src, variants)
}
