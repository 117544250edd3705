package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Eda2353/nfl/internal/domain/modelbank"
	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/pkg/logger"
)

// TrainReport summarizes one retraining pass.
type TrainReport struct {
	RequestID string
	Seasons   []int
	// Trained maps each position to its training row count.
	Trained map[stats.Position]int
	// MAE maps each trained position to its training-set mean absolute error.
	MAE map[stats.Position]float64
	// Failures maps positions whose model could not be trained to the reason.
	Failures map[stats.Position]string
}

// Retrain rebuilds every position model for predictions targeting
// (season, week) and atomically publishes the new set. Per-position failures
// degrade that position only; the previous set stays live until the swap.
func (s *Service) Retrain(ctx context.Context, season, week int) (*TrainReport, error) {
	requestID := uuid.New().String()
	log := s.log.Named("retrain")
	seasons := s.trainingSeasons(season, week)
	log.Info(ctx, "collecting training data",
		logger.String("request_id", requestID),
		logger.Any("seasons", seasons))

	samples, err := s.collectSamples(ctx, seasons, season, week)
	if err != nil {
		return nil, fmt.Errorf("collect samples: %w", err)
	}

	set, failures := s.bank.TrainAll(samples)
	report := &TrainReport{
		RequestID: requestID,
		Seasons:   seasons,
		Trained:   make(map[stats.Position]int),
		MAE:       make(map[stats.Position]float64),
		Failures:  make(map[stats.Position]string),
	}
	for _, pos := range set.Positions() {
		model, _ := set.Model(pos)
		report.Trained[pos] = model.Rows
		report.MAE[pos] = model.MAE
		log.Info(ctx, "trained position model",
			logger.String("request_id", requestID),
			logger.String("position", string(pos)),
			logger.Int("rows", model.Rows),
			logger.Float64("mae", model.MAE))
	}
	for pos, ferr := range failures {
		report.Failures[pos] = ferr.Error()
		log.Warn(ctx, "position model unavailable",
			logger.String("request_id", requestID),
			logger.String("position", string(pos)),
			logger.Error(ferr))
	}

	s.bank.Publish(set)
	return report, nil
}

// trainingSeasons picks the prior seasons plus the current one once it has
// enough completed weeks to contribute.
func (s *Service) trainingSeasons(season, week int) []int {
	var seasons []int
	for y := season - lookbackSeasons; y < season; y++ {
		seasons = append(seasons, y)
	}
	if week > minCompletedWeeks {
		seasons = append(seasons, season)
	}
	return seasons
}

// collectSamples walks every played game in the training seasons and pairs
// each player-week feature vector with the points actually scored. The
// target week itself is excluded so training never sees it.
func (s *Service) collectSamples(ctx context.Context, seasons []int, targetSeason, targetWeek int) (map[stats.Position][]modelbank.Sample, error) {
	// Every roster position gets an entry so a position with zero rows
	// surfaces as a training failure rather than silently never training.
	out := make(map[stats.Position][]modelbank.Sample)
	for _, pos := range append(stats.OffensivePositions, stats.DST) {
		out[pos] = nil
	}
	var mu sync.Mutex
	add := func(pos stats.Position, sample modelbank.Sample) {
		mu.Lock()
		out[pos] = append(out[pos], sample)
		mu.Unlock()
	}

	cutoff := stats.StrictlyBefore(targetSeason, targetWeek)
	for _, year := range seasons {
		if err := s.collectPlayerSamples(ctx, year, cutoff, add); err != nil {
			return nil, err
		}
		if err := s.collectDefenseSamples(ctx, year, cutoff, add); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Service) collectPlayerSamples(ctx context.Context, season int, cutoff func(int, int) bool, add func(stats.Position, modelbank.Sample)) error {
	players, err := s.store.Players(ctx, season)
	if err != nil {
		return fmt.Errorf("players %d: %w", season, err)
	}

	return s.forEach(ctx, len(players), func(i int) error {
		player := players[i]
		games, err := s.store.Games(ctx, player.ID)
		if err != nil {
			return err
		}
		for _, g := range games {
			if g.Season != season || g.Week < minTrainingWeek || !cutoff(g.Season, g.Week) {
				continue
			}
			vec, err := s.extractor.Extract(ctx, player, g.Season, g.Week, s.rules)
			if err != nil {
				// Thin histories early in a season are expected; the
				// row is skipped, not the player.
				continue
			}
			add(player.Position, modelbank.Sample{
				Features: vec.Values,
				Target:   s.rules.PlayerPoints(g).Total,
			})
		}
		return nil
	})
}

func (s *Service) collectDefenseSamples(ctx context.Context, season int, cutoff func(int, int) bool, add func(stats.Position, modelbank.Sample)) error {
	lines, err := s.store.DefenseGames(ctx, season)
	if err != nil {
		return fmt.Errorf("defense games %d: %w", season, err)
	}

	return s.forEach(ctx, len(lines), func(i int) error {
		g := lines[i]
		if g.Week < minTrainingWeek || !cutoff(g.Season, g.Week) {
			return nil
		}
		vec, err := s.extractor.ExtractDefense(ctx, g.Team, g.Season, g.Week, s.rules)
		if err != nil {
			return nil
		}
		add(stats.DST, modelbank.Sample{
			Features: vec.Values,
			Target:   s.rules.DefensePoints(g).Total,
		})
		return nil
	})
}

// forEach runs fn over n items with bounded parallelism, stopping at the
// first error or context cancellation.
func (s *Service) forEach(ctx context.Context, n int, fn func(i int) error) error {
	workers := s.workerCount
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	indexes := make(chan int)
	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			failed := false
			// Keep draining after a failure so the feeder never blocks.
			for i := range indexes {
				if failed {
					continue
				}
				if err := fn(i); err != nil {
					failed = true
					select {
					case errCh <- err:
					default:
					}
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}
	return <-errCh
}
