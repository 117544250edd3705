package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Eda2353/nfl/internal/domain/stats"
)

// SQLiteStore implements the repository interfaces over a SQLite database,
// the storage format the historical stat collectors write.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath and ensures the schema
// exists. Use ":memory:" for an ephemeral store.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		season INTEGER NOT NULL,
		week INTEGER NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		home_score INTEGER NOT NULL DEFAULT 0,
		away_score INTEGER NOT NULL DEFAULT 0,
		played INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_games_season_week ON games(season, week);

	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		team TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS player_games (
		player_id TEXT NOT NULL,
		game_id TEXT NOT NULL,
		season INTEGER NOT NULL,
		week INTEGER NOT NULL,
		team TEXT NOT NULL,
		home INTEGER NOT NULL DEFAULT 0,
		pass_yards REAL NOT NULL DEFAULT 0,
		pass_tds REAL NOT NULL DEFAULT 0,
		pass_ints REAL NOT NULL DEFAULT 0,
		pass_attempts REAL NOT NULL DEFAULT 0,
		rush_yards REAL NOT NULL DEFAULT 0,
		rush_tds REAL NOT NULL DEFAULT 0,
		rush_attempts REAL NOT NULL DEFAULT 0,
		rush_fumbles REAL NOT NULL DEFAULT 0,
		receptions REAL NOT NULL DEFAULT 0,
		rec_yards REAL NOT NULL DEFAULT 0,
		rec_tds REAL NOT NULL DEFAULT 0,
		targets REAL NOT NULL DEFAULT 0,
		rec_fumbles REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (player_id, game_id),
		FOREIGN KEY (player_id) REFERENCES players(id)
	);
	CREATE INDEX IF NOT EXISTS idx_player_games_player ON player_games(player_id, season, week);
	CREATE INDEX IF NOT EXISTS idx_player_games_season ON player_games(season);

	CREATE TABLE IF NOT EXISTS team_offense_games (
		team TEXT NOT NULL,
		season INTEGER NOT NULL,
		week INTEGER NOT NULL,
		home INTEGER NOT NULL DEFAULT 0,
		points REAL NOT NULL DEFAULT 0,
		pass_yards REAL NOT NULL DEFAULT 0,
		rush_yards REAL NOT NULL DEFAULT 0,
		pass_tds REAL NOT NULL DEFAULT 0,
		rush_tds REAL NOT NULL DEFAULT 0,
		turnovers REAL NOT NULL DEFAULT 0,
		sacks_allowed REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (team, season, week)
	);

	CREATE TABLE IF NOT EXISTS team_defense_games (
		team TEXT NOT NULL,
		game_id TEXT NOT NULL DEFAULT '',
		season INTEGER NOT NULL,
		week INTEGER NOT NULL,
		home INTEGER NOT NULL DEFAULT 0,
		points_allowed REAL NOT NULL DEFAULT 0,
		yards_allowed REAL NOT NULL DEFAULT 0,
		pass_yards_allowed REAL NOT NULL DEFAULT 0,
		rush_yards_allowed REAL NOT NULL DEFAULT 0,
		sacks REAL NOT NULL DEFAULT 0,
		interceptions REAL NOT NULL DEFAULT 0,
		fumbles_recovered REAL NOT NULL DEFAULT 0,
		defensive_tds REAL NOT NULL DEFAULT 0,
		safeties REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (team, season, week)
	);

	CREATE TABLE IF NOT EXISTS injuries (
		player_id TEXT NOT NULL,
		team TEXT NOT NULL,
		position TEXT NOT NULL,
		status TEXT NOT NULL,
		injury_type TEXT NOT NULL DEFAULT '',
		severity REAL NOT NULL DEFAULT 0,
		severity_known INTEGER NOT NULL DEFAULT 0,
		starter INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (player_id)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Schedule returns every game of a season ordered by week.
func (s *SQLiteStore) Schedule(ctx context.Context, season int) ([]stats.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, season, week, home_team, away_team, home_score, away_score, played
		FROM games WHERE season = ? ORDER BY week, id
	`, season)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var out []stats.Game
	for rows.Next() {
		var g stats.Game
		var played int
		if err := rows.Scan(&g.ID, &g.Season, &g.Week, &g.HomeTeam, &g.AwayTeam, &g.HomeScore, &g.AwayScore, &played); err != nil {
			return nil, err
		}
		g.Played = played == 1
		out = append(out, g)
	}
	return out, rows.Err()
}

// OffenseGames returns every team's offensive lines for a season.
func (s *SQLiteStore) OffenseGames(ctx context.Context, season int) ([]stats.TeamOffenseGame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT team, season, week, home, points, pass_yards, rush_yards, pass_tds, rush_tds, turnovers, sacks_allowed
		FROM team_offense_games WHERE season = ? ORDER BY week, team
	`, season)
	if err != nil {
		return nil, fmt.Errorf("query offense games: %w", err)
	}
	defer rows.Close()

	var out []stats.TeamOffenseGame
	for rows.Next() {
		var g stats.TeamOffenseGame
		var home int
		if err := rows.Scan(&g.Team, &g.Season, &g.Week, &home, &g.Points, &g.PassYards, &g.RushYards, &g.PassTDs, &g.RushTDs, &g.Turnovers, &g.SacksAllowed); err != nil {
			return nil, err
		}
		g.Home = home == 1
		out = append(out, g)
	}
	return out, rows.Err()
}

// DefenseGames returns every team's defensive lines for a season.
func (s *SQLiteStore) DefenseGames(ctx context.Context, season int) ([]stats.TeamDefenseGame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT team, game_id, season, week, home, points_allowed, yards_allowed, pass_yards_allowed,
		       rush_yards_allowed, sacks, interceptions, fumbles_recovered, defensive_tds, safeties
		FROM team_defense_games WHERE season = ? ORDER BY week, team
	`, season)
	if err != nil {
		return nil, fmt.Errorf("query defense games: %w", err)
	}
	defer rows.Close()

	var out []stats.TeamDefenseGame
	for rows.Next() {
		var g stats.TeamDefenseGame
		var home int
		if err := rows.Scan(&g.Team, &g.GameID, &g.Season, &g.Week, &home, &g.PointsAllowed, &g.YardsAllowed,
			&g.PassYardsAllowed, &g.RushYardsAllowed, &g.Sacks, &g.Interceptions, &g.FumblesRecovered,
			&g.DefensiveTDs, &g.Safeties); err != nil {
			return nil, err
		}
		g.Home = home == 1
		out = append(out, g)
	}
	return out, rows.Err()
}

// Players returns every player with at least one game line in a season.
func (s *SQLiteStore) Players(ctx context.Context, season int) ([]stats.PlayerInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT p.id, p.name, p.position, p.team
		FROM players p
		JOIN player_games g ON g.player_id = p.id AND g.season = ?
		ORDER BY p.id
	`, season)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var out []stats.PlayerInfo
	for rows.Next() {
		var p stats.PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.Team); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Games returns a player's history, most recent first.
func (s *SQLiteStore) Games(ctx context.Context, playerID string) ([]stats.PlayerGame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, game_id, season, week, team, home,
		       pass_yards, pass_tds, pass_ints, pass_attempts,
		       rush_yards, rush_tds, rush_attempts, rush_fumbles,
		       receptions, rec_yards, rec_tds, targets, rec_fumbles
		FROM player_games WHERE player_id = ?
		ORDER BY season DESC, week DESC
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query player games: %w", err)
	}
	defer rows.Close()

	var out []stats.PlayerGame
	for rows.Next() {
		var g stats.PlayerGame
		var home int
		if err := rows.Scan(&g.PlayerID, &g.GameID, &g.Season, &g.Week, &g.Team, &home,
			&g.PassYards, &g.PassTDs, &g.PassINTs, &g.PassAttempts,
			&g.RushYards, &g.RushTDs, &g.RushAttempts, &g.RushFumbles,
			&g.Receptions, &g.RecYards, &g.RecTDs, &g.Targets, &g.RecFumbles); err != nil {
			return nil, err
		}
		g.Home = home == 1
		out = append(out, g)
	}
	return out, rows.Err()
}

// Current returns the stored injury report.
func (s *SQLiteStore) Current(ctx context.Context) ([]stats.InjuryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, team, position, status, injury_type, severity, severity_known, starter
		FROM injuries
	`)
	if err != nil {
		return nil, fmt.Errorf("query injuries: %w", err)
	}
	defer rows.Close()

	var out []stats.InjuryRecord
	for rows.Next() {
		var rec stats.InjuryRecord
		var known, starter int
		if err := rows.Scan(&rec.PlayerID, &rec.Team, &rec.Position, &rec.Status, &rec.InjuryType, &rec.Severity, &known, &starter); err != nil {
			return nil, err
		}
		rec.SeverityKnown = known == 1
		rec.Starter = starter == 1
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveGame upserts a scheduled game.
func (s *SQLiteStore) SaveGame(ctx context.Context, g stats.Game) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, season, week, home_team, away_team, home_score, away_score, played)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET home_score=excluded.home_score,
			away_score=excluded.away_score, played=excluded.played
	`, g.ID, g.Season, g.Week, g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore, b2i(g.Played))
	return err
}

// SavePlayer upserts a player.
func (s *SQLiteStore) SavePlayer(ctx context.Context, p stats.PlayerInfo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, name, position, team) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, position=excluded.position, team=excluded.team
	`, p.ID, p.Name, string(p.Position), p.Team)
	return err
}

// SavePlayerGame upserts a player game line.
func (s *SQLiteStore) SavePlayerGame(ctx context.Context, g stats.PlayerGame) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO player_games (player_id, game_id, season, week, team, home,
			pass_yards, pass_tds, pass_ints, pass_attempts,
			rush_yards, rush_tds, rush_attempts, rush_fumbles,
			receptions, rec_yards, rec_tds, targets, rec_fumbles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.PlayerID, g.GameID, g.Season, g.Week, g.Team, b2i(g.Home),
		g.PassYards, g.PassTDs, g.PassINTs, g.PassAttempts,
		g.RushYards, g.RushTDs, g.RushAttempts, g.RushFumbles,
		g.Receptions, g.RecYards, g.RecTDs, g.Targets, g.RecFumbles)
	return err
}

// SaveOffenseGame upserts a team offensive line.
func (s *SQLiteStore) SaveOffenseGame(ctx context.Context, g stats.TeamOffenseGame) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO team_offense_games (team, season, week, home, points,
			pass_yards, rush_yards, pass_tds, rush_tds, turnovers, sacks_allowed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.Team, g.Season, g.Week, b2i(g.Home), g.Points, g.PassYards, g.RushYards,
		g.PassTDs, g.RushTDs, g.Turnovers, g.SacksAllowed)
	return err
}

// SaveDefenseGame upserts a team defensive line.
func (s *SQLiteStore) SaveDefenseGame(ctx context.Context, g stats.TeamDefenseGame) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO team_defense_games (team, game_id, season, week, home,
			points_allowed, yards_allowed, pass_yards_allowed, rush_yards_allowed,
			sacks, interceptions, fumbles_recovered, defensive_tds, safeties)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.Team, g.GameID, g.Season, g.Week, b2i(g.Home), g.PointsAllowed, g.YardsAllowed,
		g.PassYardsAllowed, g.RushYardsAllowed, g.Sacks, g.Interceptions,
		g.FumblesRecovered, g.DefensiveTDs, g.Safeties)
	return err
}

// ReplaceInjuries swaps the injury report wholesale inside one transaction.
func (s *SQLiteStore) ReplaceInjuries(ctx context.Context, report []stats.InjuryRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM injuries`); err != nil {
		return err
	}
	for _, rec := range report {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO injuries (player_id, team, position, status, injury_type, severity, severity_known, starter)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.PlayerID, rec.Team, rec.Position, string(rec.Status), rec.InjuryType,
			rec.Severity, b2i(rec.SeverityKnown), b2i(rec.Starter))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
