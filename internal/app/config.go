package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all the necessary configuration for an App instance to run.
// Every field can be seeded from the environment; explicit values passed to
// NewConfig win over environment values.
type Config struct {
	// ManifestPath points at a single .hcl file or a directory of them.
	ManifestPath string `env:"STAGEFORGE_MANIFEST"`
	// OutputPath is where the rendered plan goes; empty means stdout.
	OutputPath string `env:"STAGEFORGE_OUTPUT"`

	LogFormat string `env:"STAGEFORGE_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"STAGEFORGE_LOG_LEVEL" envDefault:"info"`

	// Capacity overrides the manifest's per-stage action limit when > 0.
	Capacity int `env:"STAGEFORGE_CAPACITY"`
}

// NewConfig merges the given config over environment-derived defaults and
// validates the result.
func NewConfig(cfg Config) (*Config, error) {
	var defaults Config
	if err := env.Parse(&defaults); err != nil {
		return nil, fmt.Errorf("reading environment configuration: %w", err)
	}

	if cfg.ManifestPath == "" {
		cfg.ManifestPath = defaults.ManifestPath
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaults.OutputPath
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaults.LogFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = defaults.Capacity
	}

	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.Capacity < 0 {
		return nil, errors.New("Capacity cannot be negative")
	}

	return &cfg, nil
}
