package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Eda2353/nfl/internal/domain/features"
	"github.com/Eda2353/nfl/internal/domain/injury"
	"github.com/Eda2353/nfl/internal/domain/lineup"
	"github.com/Eda2353/nfl/internal/domain/modelbank"
	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/pkg/logger"
	"github.com/Eda2353/nfl/pkg/metrics"
)

// SkippedPlayer records a player excluded from a request's predictions and
// the reason.
type SkippedPlayer struct {
	PlayerID string
	Position stats.Position
	Reason   string
}

// Diagnostics carries the partial-failure detail alongside a gameday result.
type Diagnostics struct {
	// UnavailablePositions maps positions with no usable model to the cause.
	UnavailablePositions map[stats.Position]string
	// Skipped lists players excluded from this request.
	Skipped []SkippedPlayer
}

// Result is a full gameday response: every computed prediction ranked, the
// built lineup, and the diagnostics a caller needs to render partial output.
type Result struct {
	RequestID string
	Season    int
	Week      int

	Rankings    []lineup.Prediction
	Lineup      lineup.Lineup
	Diagnostics Diagnostics
}

// Gameday computes predictions for every rostered player and team defense in
// (season, week), applies injury adjustments, and builds the optimal lineup.
// Per-player and per-position failures degrade to diagnostics; the request
// fails only on store errors or an invalid slot configuration.
func (s *Service) Gameday(ctx context.Context, season, week int) (*Result, error) {
	started := time.Now()
	defer func() { metrics.ObserveGamedayDuration(time.Since(started)) }()

	if err := s.slots.Validate(); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	log := s.log.Named("gameday")
	log.Info(ctx, "computing gameday predictions",
		logger.String("request_id", requestID),
		logger.Int("season", season),
		logger.Int("week", week))

	report, err := s.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("injury report: %w", err)
	}
	byPlayer := make(map[string]*stats.InjuryRecord, len(report))
	byTeam := make(map[string][]stats.InjuryRecord)
	for i := range report {
		rec := report[i]
		byPlayer[rec.PlayerID] = &report[i]
		byTeam[rec.Team] = append(byTeam[rec.Team], rec)
	}

	result := &Result{RequestID: requestID, Season: season, Week: week}
	result.Diagnostics.UnavailablePositions = make(map[stats.Position]string)

	predictions, err := s.predictPlayers(ctx, season, week, byPlayer, result)
	if err != nil {
		return nil, err
	}
	dst, err := s.predictDefenses(ctx, season, week, byTeam, result)
	if err != nil {
		return nil, err
	}
	predictions = append(predictions, dst...)

	built, err := lineup.Build(predictions, s.slots)
	if err != nil {
		return nil, err
	}
	result.Lineup = built
	result.Rankings = lineup.Rank(predictions)

	log.Info(ctx, "gameday predictions complete",
		logger.String("request_id", requestID),
		logger.Int("predictions", len(predictions)),
		logger.Int("skipped", len(result.Diagnostics.Skipped)),
		logger.Float64("lineup_total", built.Total))
	return result, nil
}

func (s *Service) predictPlayers(ctx context.Context, season, week int, injuries map[string]*stats.InjuryRecord, result *Result) ([]lineup.Prediction, error) {
	players, err := s.store.Players(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}

	var mu sync.Mutex
	var predictions []lineup.Prediction
	skip := func(p stats.PlayerInfo, reason string) {
		metrics.RecordPredictionSkipped(reason)
		mu.Lock()
		result.Diagnostics.Skipped = append(result.Diagnostics.Skipped, SkippedPlayer{
			PlayerID: p.ID, Position: p.Position, Reason: reason,
		})
		mu.Unlock()
	}

	err = s.forEach(ctx, len(players), func(i int) error {
		player := players[i]
		vec, err := s.extractor.Extract(ctx, player, season, week, s.rules)
		switch {
		case errors.Is(err, features.ErrFeatureUnavailable):
			skip(player, "no_history")
			return nil
		case errors.Is(err, features.ErrNoMatchup):
			skip(player, "bye_week")
			return nil
		case err != nil:
			return err
		}

		raw, err := s.bank.Predict(player.Position, vec.Values)
		if err != nil {
			if errors.Is(err, modelbank.ErrModelUnavailable) || errors.Is(err, modelbank.ErrFeatureMismatch) {
				mu.Lock()
				result.Diagnostics.UnavailablePositions[player.Position] = err.Error()
				mu.Unlock()
				skip(player, "model_unavailable")
				return nil
			}
			return err
		}
		metrics.RecordPrediction(string(player.Position))

		rec := injuries[player.ID]
		adjusted, impact := injury.AdjustPlayer(raw, rec)
		status := stats.StatusActive
		if rec != nil {
			status = rec.Status
		}

		mu.Lock()
		predictions = append(predictions, lineup.Prediction{
			PlayerID: player.ID,
			Name:     player.Name,
			Team:     player.Team,
			Opponent: vec.Opponent,
			Position: player.Position,
			Raw:      raw,
			Adjusted: adjusted,
			Impact:   impact,
			Status:   status,
		})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// predictDefenses scores every DST with a scheduled game in the target week,
// boosted by the opposing offense's injury report.
func (s *Service) predictDefenses(ctx context.Context, season, week int, injuriesByTeam map[string][]stats.InjuryRecord, result *Result) ([]lineup.Prediction, error) {
	schedule, err := s.store.Schedule(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}

	var predictions []lineup.Prediction
	for _, g := range schedule {
		if g.Week != week {
			continue
		}
		for _, side := range [][2]string{{g.HomeTeam, g.AwayTeam}, {g.AwayTeam, g.HomeTeam}} {
			team, opponent := side[0], side[1]
			vec, err := s.extractor.ExtractDefense(ctx, team, season, week, s.rules)
			if err != nil {
				metrics.RecordPredictionSkipped("no_history")
				result.Diagnostics.Skipped = append(result.Diagnostics.Skipped, SkippedPlayer{
					PlayerID: team, Position: stats.DST, Reason: "no_history",
				})
				continue
			}
			raw, err := s.bank.Predict(stats.DST, vec.Values)
			if err != nil {
				result.Diagnostics.UnavailablePositions[stats.DST] = err.Error()
				metrics.RecordPredictionSkipped("model_unavailable")
				continue
			}
			metrics.RecordPrediction(string(stats.DST))

			adjusted, boost := injury.AdjustDefense(raw, injuriesByTeam[opponent], s.boostCap)
			predictions = append(predictions, lineup.Prediction{
				PlayerID: team + "-DST",
				Name:     team + " Defense",
				Team:     team,
				Opponent: opponent,
				Position: stats.DST,
				Raw:      raw,
				Adjusted: adjusted,
				Boost:    boost,
				Status:   stats.StatusActive,
			})
		}
	}
	return predictions, nil
}
