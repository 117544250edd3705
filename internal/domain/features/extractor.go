// Package features assembles per-player feature vectors: base performance
// features derived from historical game lines, concatenated with the
// position-specific matchup bundle for the target week.
package features

import (
	"context"
	"fmt"
	"math"

	"github.com/Eda2353/nfl/internal/domain/matchup"
	"github.com/Eda2353/nfl/internal/domain/scoring"
	"github.com/Eda2353/nfl/internal/domain/stats"
)

// BaseFeatureCount is the number of position-independent base features at the
// front of every vector.
const BaseFeatureCount = 8

// VectorSize is the full vector length: base features plus the matchup bundle.
const VectorSize = BaseFeatureCount + matchup.BundleSize

// baseNames is the fixed order of the base features.
var baseNames = []string{
	"recency_avg",
	"season_avg",
	"games_played",
	"home_avg",
	"away_avg",
	"trend_slope",
	"consistency",
	"usage_rate",
}

// Vector is one player's ordered feature vector for one target week.
type Vector struct {
	PlayerID string
	Team     string
	Opponent string
	Home     bool
	Position stats.Position
	Names    []string
	Values   []float64
}

// Extractor builds feature vectors from historical stats and the matchup
// analyzer.
type Extractor struct {
	players  stats.PlayerRepo
	teams    stats.TeamStatRepo
	games    stats.GameRepo
	analyzer *matchup.Analyzer
}

// New creates an Extractor.
func New(players stats.PlayerRepo, teams stats.TeamStatRepo, games stats.GameRepo, analyzer *matchup.Analyzer) *Extractor {
	return &Extractor{players: players, teams: teams, games: games, analyzer: analyzer}
}

// Extract builds the vector for an offensive player targeting (season, week).
// Only games strictly before the target week contribute, so the same call
// serves both training-set construction and live prediction.
func (e *Extractor) Extract(ctx context.Context, player stats.PlayerInfo, season, week int, rules scoring.Rules) (Vector, error) {
	opponent, home, err := e.opponent(ctx, player.Team, season, week)
	if err != nil {
		return Vector{}, err
	}

	games, err := e.players.Games(ctx, player.ID)
	if err != nil {
		return Vector{}, fmt.Errorf("player games: %w", err)
	}
	before := stats.StrictlyBefore(season, week)
	var history []gameLine
	for _, g := range games {
		if !before(g.Season, g.Week) {
			continue
		}
		history = append(history, gameLine{
			season: g.Season,
			points: rules.PlayerPoints(g).Total,
			home:   g.Home,
			usage:  g.PassAttempts + g.RushAttempts + g.Targets,
		})
	}
	if len(history) == 0 {
		return Vector{}, fmt.Errorf("%w: player %s has no games before %d week %d", ErrFeatureUnavailable, player.ID, season, week)
	}

	bundle, err := e.analyzer.Features(ctx, player.Team, opponent, player.Position, season, week)
	if err != nil {
		return Vector{}, fmt.Errorf("matchup bundle: %w", err)
	}
	return assemble(player.ID, player.Team, opponent, home, player.Position, history, season, bundle), nil
}

// ExtractDefense builds the vector for a team defense targeting (season, week).
func (e *Extractor) ExtractDefense(ctx context.Context, team string, season, week int, rules scoring.Rules) (Vector, error) {
	opponent, home, err := e.opponent(ctx, team, season, week)
	if err != nil {
		return Vector{}, err
	}

	var history []gameLine
	before := stats.StrictlyBefore(season, week)
	for _, year := range []int{season, season - 1} {
		lines, err := e.teams.DefenseGames(ctx, year)
		if err != nil {
			return Vector{}, fmt.Errorf("defense games %d: %w", year, err)
		}
		for _, g := range lines {
			if g.Team != team || !before(g.Season, g.Week) {
				continue
			}
			history = append(history, gameLine{
				season: g.Season,
				week:   g.Week,
				points: rules.DefensePoints(g).Total,
				home:   g.Home,
				usage:  g.Sacks + g.Interceptions + g.FumblesRecovered,
			})
		}
	}
	if len(history) == 0 {
		return Vector{}, fmt.Errorf("%w: defense %s has no games before %d week %d", ErrFeatureUnavailable, team, season, week)
	}
	sortRecentFirst(history)

	bundle, err := e.analyzer.DefenseFeatures(ctx, team, opponent, season, week)
	if err != nil {
		return Vector{}, fmt.Errorf("matchup bundle: %w", err)
	}
	return assemble(team, team, opponent, home, stats.DST, history, season, bundle), nil
}

type gameLine struct {
	season int
	week   int
	points float64
	home   bool
	usage  float64
}

// sortRecentFirst orders history newest game first, matching the player repo
// contract.
func sortRecentFirst(lines []gameLine) {
	for i := 1; i < len(lines); i++ {
		for j := i; j > 0; j-- {
			a, b := lines[j-1], lines[j]
			if a.season > b.season || (a.season == b.season && a.week >= b.week) {
				break
			}
			lines[j-1], lines[j] = b, a
		}
	}
}

// assemble computes the base features over recent-first history and appends
// the matchup bundle.
func assemble(id, team, opponent string, home bool, pos stats.Position, history []gameLine, season int, bundle matchup.Bundle) Vector {
	names := make([]string, 0, VectorSize)
	values := make([]float64, 0, VectorSize)
	names = append(names, baseNames...)
	values = append(values,
		recencyAvg(history),
		seasonAvg(history, season),
		gamesPlayed(history, season),
		splitAvg(history, true),
		splitAvg(history, false),
		trendSlope(history, 5),
		consistency(history, 5),
		usageRate(history, 3),
	)
	names = append(names, bundle.Names...)
	values = append(values, bundle.Values...)
	return Vector{
		PlayerID: id,
		Team:     team,
		Opponent: opponent,
		Home:     home,
		Position: pos,
		Names:    names,
		Values:   values,
	}
}

func (e *Extractor) opponent(ctx context.Context, team string, season, week int) (string, bool, error) {
	schedule, err := e.games.Schedule(ctx, season)
	if err != nil {
		return "", false, fmt.Errorf("schedule: %w", err)
	}
	for _, g := range schedule {
		if g.Week != week {
			continue
		}
		if opp, home, ok := g.Opponent(team); ok {
			return opp, home, nil
		}
	}
	return "", false, fmt.Errorf("%w: %s in %d week %d", ErrNoMatchup, team, season, week)
}

// recencyAvg weights the last three games 3/2/1, most recent heaviest.
func recencyAvg(history []gameLine) float64 {
	weights := []float64{3, 2, 1}
	var sum, wsum float64
	for i, g := range history {
		if i >= len(weights) {
			break
		}
		sum += g.points * weights[i]
		wsum += weights[i]
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// seasonAvg averages the target season's games, falling back to the full
// history for players without a current-season game yet.
func seasonAvg(history []gameLine, season int) float64 {
	var sum float64
	var n int
	for _, g := range history {
		if g.season == season {
			sum += g.points
			n++
		}
	}
	if n == 0 {
		for _, g := range history {
			sum += g.points
		}
		n = len(history)
	}
	return sum / float64(n)
}

func gamesPlayed(history []gameLine, season int) float64 {
	var n int
	for _, g := range history {
		if g.season == season {
			n++
		}
	}
	return float64(n)
}

// splitAvg averages home or away games, falling back to the overall average
// when the split is empty.
func splitAvg(history []gameLine, home bool) float64 {
	var sum, all float64
	var n int
	for _, g := range history {
		all += g.points
		if g.home == home {
			sum += g.points
			n++
		}
	}
	if n == 0 {
		return all / float64(len(history))
	}
	return sum / float64(n)
}

// trendSlope fits a least-squares line over the last n games in
// chronological order; positive means improving form.
func trendSlope(history []gameLine, n int) float64 {
	if len(history) < 2 {
		return 0
	}
	if n > len(history) {
		n = len(history)
	}
	// history is recent-first; walk backwards for chronological order.
	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		x := float64(i)
		y := history[n-1-i].points
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// consistency is the population standard deviation over the last n games.
func consistency(history []gameLine, n int) float64 {
	if n > len(history) {
		n = len(history)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += history[i].points
	}
	mean := sum / float64(n)
	var varSum float64
	for i := 0; i < n; i++ {
		d := history[i].points - mean
		varSum += d * d
	}
	return math.Sqrt(varSum / float64(n))
}

// usageRate averages opportunities (attempts plus targets, or defensive
// havoc plays for a DST) over the last n games.
func usageRate(history []gameLine, n int) float64 {
	if n > len(history) {
		n = len(history)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += history[i].usage
	}
	return sum / float64(n)
}
