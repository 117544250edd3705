// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env vars on top.
// - External errors must be wrapped via this package's error kinds.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath points at the historical stats database (sqlite).
	// Empty means the in-memory generated dataset is used instead.
	DBPath string `koanf:"db_path"`

	// MetricsAddr configures the Prometheus listen address, e.g. ":9090".
	// Empty disables the metrics listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// ScoringSystem selects the point rules: PPR, HalfPPR, Standard,
	// FanDuel or DraftKings.
	ScoringSystem string `koanf:"scoring_system"`

	// Season and Week identify the target slate.
	Season int `koanf:"season"`
	Week   int `koanf:"week"`

	// Slots maps position -> required lineup slot count.
	Slots map[string]int `koanf:"slots"`

	// StrengthWindowWeeks bounds the rolling window for team strength scores.
	StrengthWindowWeeks int `koanf:"strength_window_weeks"`

	// StrengthMinGames is the in-window game count below which the window
	// widens to the prior season.
	StrengthMinGames int `koanf:"strength_min_games"`

	// RidgeLambda is the L2 regularization strength for position models.
	RidgeLambda float64 `koanf:"ridge_lambda"`

	// MinTrainingRows is the per-position example count below which
	// training fails for that position.
	MinTrainingRows int `koanf:"min_training_rows"`

	// DefenseBoostCap caps the additive DST boost from opponent injuries.
	DefenseBoostCap float64 `koanf:"defense_boost_cap"`

	// WorkerCount bounds concurrent per-player prediction work.
	WorkerCount int `koanf:"worker_count"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		ScoringSystem: "FanDuel",
		Season:        2024,
		Week:          10,
		Slots: map[string]int{
			"QB": 1, "RB": 2, "WR": 3, "TE": 1, "DST": 1,
		},
		StrengthWindowWeeks: 8,
		StrengthMinGames:    3,
		RidgeLambda:         1.0,
		MinTrainingRows:     50,
		DefenseBoostCap:     0.5,
		WorkerCount:         runtime.NumCPU(),
	}
}
