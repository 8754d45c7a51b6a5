// Package arbiter wraps a text-generation service behind a synchronous
// query contract with bounded retry, exponential backoff and a
// distinguished hard-failure mode. The fusion engine uses it to pick
// among candidate variants when more than one option exists.
package arbiter

import (
	"context"
)

// Config represents one generation request to an LLM provider.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Prompt      string
}

// Provider defines the interface for an LLM provider.
type Provider interface {
	// Name returns the provider name for logging.
	Name() string

	// Generate sends the prompt and returns the raw text response.
	Generate(ctx context.Context, config Config) (string, error)
}
