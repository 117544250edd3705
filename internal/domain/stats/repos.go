package stats

import "context"

// GameRepo provides the league schedule with final scores.
type GameRepo interface {
	// Schedule returns every game of a season, played or not.
	Schedule(ctx context.Context, season int) ([]Game, error)
}

// TeamStatRepo provides league-wide per-game team aggregates.
type TeamStatRepo interface {
	// OffenseGames returns every team's offensive game lines for a season.
	OffenseGames(ctx context.Context, season int) ([]TeamOffenseGame, error)
	// DefenseGames returns every team's defensive game lines for a season.
	DefenseGames(ctx context.Context, season int) ([]TeamDefenseGame, error)
}

// PlayerRepo provides player rosters and per-player game history.
type PlayerRepo interface {
	// Players returns every player with at least one game line in a season.
	Players(ctx context.Context, season int) ([]PlayerInfo, error)
	// Games returns a player's full game history, most recent first.
	Games(ctx context.Context, playerID string) ([]PlayerGame, error)
}

// InjuryFeed provides the current injury report. Staleness is the feed's
// responsibility.
type InjuryFeed interface {
	Current(ctx context.Context) ([]InjuryRecord, error)
}
