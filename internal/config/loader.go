package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if NFL_CONFIG is set
//  3. env (prefix NFL_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("NFL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: NFL_SEASON, NFL_DB_PATH, ...
	// Map env keys like NFL_DB_PATH -> db_path (flat keys, underscores kept
	// to match the koanf tags on the struct).
	envProvider := env.Provider("NFL_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "nfl_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.Season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidConfig)
	}
	if cfg.Week <= 0 {
		return nil, fmt.Errorf("%w: week must be positive", ErrInvalidConfig)
	}
	if cfg.ScoringSystem == "" {
		return nil, fmt.Errorf("%w: scoring_system must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
