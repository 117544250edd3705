// Command nflpredict retrains the position models and computes the optimal
// lineup for the configured week.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Eda2353/nfl/internal/adapters/repository"
	"github.com/Eda2353/nfl/internal/app"
	"github.com/Eda2353/nfl/internal/config"
	"github.com/Eda2353/nfl/internal/domain/lineup"
	"github.com/Eda2353/nfl/internal/domain/modelbank"
	"github.com/Eda2353/nfl/internal/domain/scoring"
	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/internal/domain/strength"
	"github.com/Eda2353/nfl/internal/gen"
	"github.com/Eda2353/nfl/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	// syntheticInjuryRate flags a plausible share of the generated league.
	syntheticInjuryRate = 0.05
)

// cachedStore layers the bounded player-history cache over a full store.
type cachedStore struct {
	app.Store
	players *repository.CachedPlayerRepo
}

func (c cachedStore) Games(ctx context.Context, playerID string) ([]stats.PlayerGame, error) {
	return c.players.Games(ctx, playerID)
}

func main() {
	logger.Init()
	log := logger.Named("nflpredict")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	store, cleanup, err := openStore(ctx, log, cfg)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	rules, err := scoring.System(cfg.ScoringSystem)
	if err != nil {
		log.Error(ctx, "unknown scoring system",
			logger.String("scoring_system", cfg.ScoringSystem),
			logger.Any("known", scoring.Systems()))
		os.Exit(1)
	}

	slots := lineup.SlotConfig{}
	for pos, n := range cfg.Slots {
		slots[stats.Position(pos)] = n
	}

	svc := app.New(store,
		app.WithLogger(logger.Named("service")),
		app.WithScoringRules(rules),
		app.WithSlots(slots),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithDefenseBoostCap(cfg.DefenseBoostCap),
		app.WithStrengthOptions(
			strength.WithWindowWeeks(cfg.StrengthWindowWeeks),
			strength.WithMinGames(cfg.StrengthMinGames),
		),
		app.WithModelOptions(
			modelbank.WithLambda(cfg.RidgeLambda),
			modelbank.WithMinRows(cfg.MinTrainingRows),
		),
	)

	report, err := svc.Retrain(ctx, cfg.Season, cfg.Week)
	if err != nil {
		log.Error(ctx, "retraining failed", logger.Error(err))
		os.Exit(1)
	}
	for pos, reason := range report.Failures {
		log.Warn(ctx, "position will have no predictions",
			logger.String("position", string(pos)),
			logger.String("reason", reason))
	}

	result, err := svc.Gameday(ctx, cfg.Season, cfg.Week)
	if err != nil {
		log.Error(ctx, "gameday computation failed", logger.Error(err))
		os.Exit(1)
	}

	for _, p := range result.Lineup.Starters {
		log.Info(ctx, "lineup slot",
			logger.String("position", string(p.Position)),
			logger.String("player", p.Name),
			logger.String("team", p.Team),
			logger.String("opponent", p.Opponent),
			logger.Float64("projected", p.Adjusted))
	}
	for _, u := range result.Lineup.Unfilled {
		log.Warn(ctx, "unfilled lineup slot",
			logger.String("position", string(u.Position)),
			logger.String("reason", u.Reason))
	}
	log.Info(ctx, "lineup complete",
		logger.String("request_id", result.RequestID),
		logger.Int("season", result.Season),
		logger.Int("week", result.Week),
		logger.Float64("total_projected", result.Lineup.Total),
		logger.Int("players_ranked", len(result.Rankings)),
		logger.Int("players_skipped", len(result.Diagnostics.Skipped)))
}

// openStore opens the configured SQLite database or falls back to a
// generated synthetic league.
func openStore(ctx context.Context, log logger.Logger, cfg *config.Config) (app.Store, func(), error) {
	if cfg.DBPath != "" {
		log.Info(ctx, "opening stats database", logger.String("db_path", cfg.DBPath))
		sqlite, err := repository.NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		store := cachedStore{
			Store:   sqlite,
			players: repository.NewCachedPlayerRepo(sqlite),
		}
		return store, func() { _ = sqlite.Close() }, nil
	}

	log.Info(ctx, "no db_path configured; generating synthetic league",
		logger.Int("season", cfg.Season))
	mem := repository.NewMemory()
	genCfg := gen.DefaultConfig(cfg.Season)
	genCfg.InjuryRate = syntheticInjuryRate
	gen.Populate(mem, genCfg)
	return mem, func() {}, nil
}

func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(ctx, "metrics server failed", logger.Error(err))
	}
}
