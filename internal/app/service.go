// Package app wires the domain components into the gameday prediction
// service: training-set assembly, model retraining, per-player prediction
// fan-out, injury adjustment, and lineup construction.
package app

import (
	"runtime"

	"github.com/Eda2353/nfl/internal/domain/features"
	"github.com/Eda2353/nfl/internal/domain/injury"
	"github.com/Eda2353/nfl/internal/domain/lineup"
	"github.com/Eda2353/nfl/internal/domain/matchup"
	"github.com/Eda2353/nfl/internal/domain/modelbank"
	"github.com/Eda2353/nfl/internal/domain/scoring"
	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/internal/domain/strength"
	"github.com/Eda2353/nfl/pkg/logger"
)

// Training-set defaults.
const (
	// lookbackSeasons is how many prior seasons feed each training set.
	lookbackSeasons = 3
	// minCompletedWeeks is how many completed weeks the current season
	// needs before it also contributes training rows.
	minCompletedWeeks = 8
	// minTrainingWeek skips the earliest weeks of each season, where
	// feature windows are nearly empty.
	minTrainingWeek = 2
)

// Store bundles every repository interface the service reads.
type Store interface {
	stats.GameRepo
	stats.TeamStatRepo
	stats.PlayerRepo
	stats.InjuryFeed
}

// Service is the gameday prediction engine.
type Service struct {
	store     Store
	rules     scoring.Rules
	scorer    *strength.Scorer
	analyzer  *matchup.Analyzer
	extractor *features.Extractor
	bank      *modelbank.Bank

	slots       lineup.SlotConfig
	workerCount int
	boostCap    float64

	strengthOpts []strength.Option
	modelOpts    []modelbank.Option

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScoringRules sets the point rules used for training labels and
// feature construction.
func WithScoringRules(rules scoring.Rules) Option {
	return func(s *Service) {
		s.rules = rules
	}
}

// WithSlots sets the lineup slot configuration.
func WithSlots(slots lineup.SlotConfig) Option {
	return func(s *Service) {
		if len(slots) > 0 {
			s.slots = slots
		}
	}
}

// WithWorkerCount bounds concurrent per-player prediction and training work.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDefenseBoostCap caps the DST injury boost.
func WithDefenseBoostCap(cap float64) Option {
	return func(s *Service) {
		if cap > 0 {
			s.boostCap = cap
		}
	}
}

// WithStrengthOptions configures the team strength scorer.
func WithStrengthOptions(opts ...strength.Option) Option {
	return func(s *Service) {
		s.strengthOpts = append(s.strengthOpts, opts...)
	}
}

// WithModelOptions configures the model bank.
func WithModelOptions(opts ...modelbank.Option) Option {
	return func(s *Service) {
		s.modelOpts = append(s.modelOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Service over a stat store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		rules: scoring.Default(),
		slots: lineup.SlotConfig{
			stats.QB: 1, stats.RB: 2, stats.WR: 3, stats.TE: 1, stats.DST: 1,
		},
		workerCount: runtime.NumCPU(),
		boostCap:    injury.DefaultBoostCap,
		log:         logger.Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scorer = strength.New(store, s.strengthOpts...)
	s.analyzer = matchup.New(s.scorer)
	s.extractor = features.New(store, store, store, s.analyzer)
	s.bank = modelbank.New(s.modelOpts...)
	return s
}
