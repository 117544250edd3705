// Package stats contains the shared statistical domain types, the repository
// interfaces the engine consumes, and the lookahead filter shared by every
// component that selects historical games.
package stats

// Position identifies a fantasy roster position.
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	DST Position = "DST"
)

// OffensivePositions are the player positions with per-player game lines.
var OffensivePositions = []Position{QB, RB, WR, TE}

// Valid reports whether p is a recognized roster position.
func (p Position) Valid() bool {
	switch p {
	case QB, RB, WR, TE, DST:
		return true
	}
	return false
}

// Game is one scheduled (and possibly played) game.
type Game struct {
	ID        string
	Season    int
	Week      int
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Played    bool
}

// Opponent returns the other team in the game, and whether team was at home.
// The second result is false when team is not part of the game.
func (g Game) Opponent(team string) (opponent string, home bool, ok bool) {
	switch team {
	case g.HomeTeam:
		return g.AwayTeam, true, true
	case g.AwayTeam:
		return g.HomeTeam, false, true
	}
	return "", false, false
}

// PlayerInfo describes a rostered player.
type PlayerInfo struct {
	ID       string
	Name     string
	Position Position
	Team     string
}

// PlayerGame is one player's statistical line for one game.
type PlayerGame struct {
	PlayerID string
	GameID   string
	Season   int
	Week     int
	Team     string
	Home     bool

	PassYards    float64
	PassTDs      float64
	PassINTs     float64
	PassAttempts float64

	RushYards    float64
	RushTDs      float64
	RushAttempts float64
	RushFumbles  float64

	Receptions  float64
	RecYards    float64
	RecTDs      float64
	Targets     float64
	RecFumbles  float64
}

// TeamOffenseGame aggregates a team's offensive output for one game.
type TeamOffenseGame struct {
	Team   string
	Season int
	Week   int
	Home   bool

	Points       float64
	PassYards    float64
	RushYards    float64
	PassTDs      float64
	RushTDs      float64
	Turnovers    float64
	SacksAllowed float64
}

// TeamDefenseGame aggregates a team's defensive line for one game.
type TeamDefenseGame struct {
	Team   string
	GameID string
	Season int
	Week   int
	Home   bool

	PointsAllowed    float64
	YardsAllowed     float64
	PassYardsAllowed float64
	RushYardsAllowed float64
	Sacks            float64
	Interceptions    float64
	FumblesRecovered float64
	DefensiveTDs     float64
	Safeties         float64
}
