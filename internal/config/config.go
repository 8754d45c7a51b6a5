// Package config loads the explicit run configuration. The loaded value
// is passed into constructors; nothing here is process-global.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vdeh-bibliothek/bibfusion/internal/fusion"
)

// Config is the full run configuration.
type Config struct {
	Arbiter ArbiterConfig `yaml:"arbiter"`
	Fusion  FusionConfig  `yaml:"fusion"`
	Batch   BatchConfig   `yaml:"batch"`
}

// ArbiterConfig configures the arbitration client.
type ArbiterConfig struct {
	Provider    string  `yaml:"provider"` // "ollama" or "gemini"
	Model       string  `yaml:"model"`
	OllamaURL   string  `yaml:"ollama_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSec  int     `yaml:"timeout_sec"`
	MaxRetries  int     `yaml:"max_retries"`
	SoftFail    bool    `yaml:"soft_fail"`
}

// FusionConfig holds the engine thresholds.
type FusionConfig struct {
	TitleAccept             float64 `yaml:"title_accept"`
	TitleRescue             float64 `yaml:"title_rescue"`
	PagesTolerance          float64 `yaml:"pages_tolerance"`
	ValidatorTitleFloor     float64 `yaml:"validator_title_floor"`
	ValidatorYearTolerance  int     `yaml:"validator_year_tolerance"`
	ValidatorPagesTolerance float64 `yaml:"validator_pages_tolerance"`
}

// BatchConfig configures the batch driver.
type BatchConfig struct {
	Concurrency   int `yaml:"concurrency"`
	ProgressEvery int `yaml:"progress_every"`
}

// Default returns the production defaults.
func Default() Config {
	engine := fusion.DefaultConfig()
	return Config{
		Arbiter: ArbiterConfig{
			Provider:    "ollama",
			Model:       "llama3.3:70b",
			Temperature: 0.1,
			MaxTokens:   180,
			TimeoutSec:  220,
			MaxRetries:  4,
		},
		Fusion: FusionConfig{
			TitleAccept:             engine.TitleAccept,
			TitleRescue:             engine.TitleRescue,
			PagesTolerance:          engine.PagesTolerance,
			ValidatorTitleFloor:     engine.ValidatorTitleFloor,
			ValidatorYearTolerance:  engine.ValidatorYearTolerance,
			ValidatorPagesTolerance: engine.ValidatorPagesTolerance,
		},
		Batch: BatchConfig{
			Concurrency:   1,
			ProgressEvery: 25,
		},
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// EngineConfig converts the fusion section into the engine's config.
func (c FusionConfig) EngineConfig() fusion.Config {
	return fusion.Config{
		TitleAccept:             c.TitleAccept,
		TitleRescue:             c.TitleRescue,
		PagesTolerance:          c.PagesTolerance,
		ValidatorTitleFloor:     c.ValidatorTitleFloor,
		ValidatorYearTolerance:  c.ValidatorYearTolerance,
		ValidatorPagesTolerance: c.ValidatorPagesTolerance,
	}
}
