package arbiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrUnavailable signals that the arbitration service could not be
// reached after all retries. The batch driver aborts the run on this
// error instead of silently degrading every remaining record to
// "no match".
var ErrUnavailable = errors.New("arbitration service unavailable")

// Options configures the retrying client. Zero values fall back to the
// defaults below.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int

	MaxRetries  int
	BackoffBase time.Duration
	BackoffCap  time.Duration

	// SoftFail makes Query return an empty response instead of
	// ErrUnavailable after exhausting retries. Off by default; batch
	// processing wants a down service to halt the run loudly.
	SoftFail bool
}

func (o Options) withDefaults() Options {
	if o.Temperature == 0 {
		o.Temperature = 0.1
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = 180
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 4
	}
	if o.BackoffBase == 0 {
		o.BackoffBase = 2 * time.Second
	}
	if o.BackoffCap == 0 {
		o.BackoffCap = 15 * time.Second
	}
	return o
}

// Client wraps a Provider with bounded retry and exponential backoff.
type Client struct {
	provider Provider
	opts     Options
}

// NewClient creates a retrying arbitration client around the given
// provider.
func NewClient(provider Provider, opts Options) *Client {
	return &Client{
		provider: provider,
		opts:     opts.withDefaults(),
	}
}

// Query sends the prompt and returns the trimmed response text. Transport
// failures are retried with exponential backoff (base delay doubling per
// attempt, capped). After exhausting retries the client either returns
// ErrUnavailable or, in soft-fail mode, an empty response and nil error.
func (c *Client) Query(ctx context.Context, prompt string) (string, error) {
	cfg := Config{
		Model:       c.opts.Model,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
		Prompt:      prompt,
	}

	var lastErr error
	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		response, err := c.provider.Generate(ctx, cfg)
		if err == nil {
			return strings.TrimSpace(response), nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		lastErr = err
		slog.Warn("Arbitration query failed",
			"provider", c.provider.Name(),
			"attempt", fmt.Sprintf("%d/%d", attempt+1, c.opts.MaxRetries),
			"err", err)

		if attempt == c.opts.MaxRetries-1 {
			break
		}

		wait := c.opts.BackoffBase << attempt
		if wait > c.opts.BackoffCap {
			wait = c.opts.BackoffCap
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if c.opts.SoftFail {
		slog.Error("Arbitration exhausted retries, continuing in soft-fail mode", "err", lastErr)
		return "", nil
	}
	return "", fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, c.opts.MaxRetries, lastErr)
}

// Ping verifies the arbitration service answers at all, so a down
// service fails a batch before its first record.
func (c *Client) Ping(ctx context.Context) error {
	cfg := Config{
		Model:       c.opts.Model,
		Temperature: c.opts.Temperature,
		MaxTokens:   4,
		Prompt:      "ping",
	}
	if _, err := c.provider.Generate(ctx, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	slog.Info("Arbitration service reachable", "provider", c.provider.Name(), "model", c.opts.Model)
	return nil
}
