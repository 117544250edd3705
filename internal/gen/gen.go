// Package gen produces deterministic synthetic league data: schedules, team
// game lines, rosters, and player stat lines with realistic spread. It backs
// demo runs and integration tests when no stat database is available.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/Eda2353/nfl/internal/adapters/repository"
	"github.com/Eda2353/nfl/internal/domain/stats"
)

// Stat generation ranges, tuned to produce league-typical box scores.
const (
	basePoints      = 13.0
	pointsSpread    = 16.0
	basePassYards   = 180.0
	passYardsSpread = 140.0
	baseRushYards   = 80.0
	rushYardsSpread = 70.0
)

// Config controls the synthetic league shape.
type Config struct {
	Seasons []int
	Weeks   int
	Teams   []string
	Seed    int64
	// InjuryRate is the fraction of players carrying an injury designation
	// in the generated report. Zero disables the report.
	InjuryRate float64
}

// DefaultTeams returns a 32-team league.
func DefaultTeams() []string {
	return []string{
		"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
		"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
		"LAC", "LAR", "LV", "MIA", "MIN", "NE", "NO", "NYG",
		"NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
	}
}

// DefaultConfig covers three full seasons plus ten weeks of the current one.
func DefaultConfig(currentSeason int) Config {
	return Config{
		Seasons: []int{currentSeason - 3, currentSeason - 2, currentSeason - 1, currentSeason},
		Weeks:   17,
		Teams:   DefaultTeams(),
		Seed:    1,
	}
}

// profile fixes a team's latent quality for the whole run so strength scores
// have a stable ordering to recover.
type profile struct {
	offense float64 // [0,1], higher = better offense
	defense float64
}

// Populate fills store with a full synthetic league. The same Config always
// produces the same data.
func Populate(store *repository.MemoryStore, cfg Config) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	if len(cfg.Teams) == 0 {
		cfg.Teams = DefaultTeams()
	}
	if cfg.Weeks <= 0 {
		cfg.Weeks = 17
	}

	profiles := make(map[string]profile, len(cfg.Teams))
	for _, team := range cfg.Teams {
		profiles[team] = profile{
			offense: 0.15 + rng.Float64()*0.7,
			defense: 0.15 + rng.Float64()*0.7,
		}
	}
	rosters := buildRosters(store, cfg.Teams, rng)

	currentSeason := cfg.Seasons[len(cfg.Seasons)-1]
	for _, season := range cfg.Seasons {
		weeks := cfg.Weeks
		for week := 1; week <= weeks; week++ {
			for _, pair := range pairings(cfg.Teams, week) {
				home, away := pair[0], pair[1]
				// The final week of the current season stays unplayed;
				// it is the prediction target.
				played := !(season == currentSeason && week == weeks)
				game := stats.Game{
					ID:       fmt.Sprintf("%d-w%02d-%s-%s", season, week, away, home),
					Season:   season,
					Week:     week,
					HomeTeam: home,
					AwayTeam: away,
					Played:   played,
				}
				if played {
					playGame(store, rosters, profiles, &game, rng)
				}
				store.AddGame(game)
			}
		}
	}

	if cfg.InjuryRate > 0 {
		store.SetInjuries(injuryReport(cfg.Teams, rosters, cfg.InjuryRate, rng))
	}
}

type rosterSpot struct {
	info  stats.PlayerInfo
	skill float64 // [0,1] within-position talent
}

func buildRosters(store *repository.MemoryStore, teams []string, rng *rand.Rand) map[string][]rosterSpot {
	depth := map[stats.Position]int{stats.QB: 1, stats.RB: 2, stats.WR: 3, stats.TE: 1}
	rosters := make(map[string][]rosterSpot, len(teams))
	for _, team := range teams {
		for _, pos := range stats.OffensivePositions {
			for slot := 1; slot <= depth[pos]; slot++ {
				info := stats.PlayerInfo{
					ID:       fmt.Sprintf("%s-%s%d", team, pos, slot),
					Name:     fmt.Sprintf("%s %s %d", team, pos, slot),
					Position: pos,
					Team:     team,
				}
				store.AddPlayer(info)
				// Depth-one players get the lion's share of volume.
				skill := 0.9 - 0.3*float64(slot-1) + rng.Float64()*0.1
				rosters[team] = append(rosters[team], rosterSpot{info: info, skill: skill})
			}
		}
	}
	return rosters
}

// pairings rotates a round-robin so every team plays once per week.
func pairings(teams []string, week int) [][2]string {
	n := len(teams)
	if n%2 != 0 {
		teams = teams[:n-1]
		n--
	}
	rotated := make([]string, n-1)
	for i := 0; i < n-1; i++ {
		rotated[i] = teams[1+((i+week-1)%(n-1))]
	}
	out := make([][2]string, 0, n/2)
	out = append(out, [2]string{teams[0], rotated[n-2]})
	for i := 0; i < n/2-1; i++ {
		out = append(out, [2]string{rotated[i], rotated[n-3-i]})
	}
	return out
}

// playGame generates both teams' box scores and the player lines behind them.
func playGame(store *repository.MemoryStore, rosters map[string][]rosterSpot, profiles map[string]profile, game *stats.Game, rng *rand.Rand) {
	lines := make(map[string]stats.TeamOffenseGame, 2)
	for _, side := range []struct {
		team, opp string
		home      bool
	}{
		{game.HomeTeam, game.AwayTeam, true},
		{game.AwayTeam, game.HomeTeam, false},
	} {
		off := profiles[side.team].offense
		oppDef := profiles[side.opp].defense
		// Offense quality minus opposing defense quality drives output.
		edge := clamp01(0.5 + (off-oppDef)/2)

		points := basePoints + edge*pointsSpread + rng.NormFloat64()*3
		if points < 0 {
			points = 0
		}
		passYards := basePassYards + edge*passYardsSpread + rng.NormFloat64()*25
		rushYards := baseRushYards + edge*rushYardsSpread + rng.NormFloat64()*15
		passTDs := roundStat(edge*3 + rng.NormFloat64()*0.5)
		rushTDs := roundStat(edge*1.5 + rng.NormFloat64()*0.4)
		turnovers := roundStat((1-edge)*2.5 + rng.NormFloat64()*0.5)
		sacksAllowed := roundStat((1-edge)*3.5 + rng.NormFloat64()*0.7)

		line := stats.TeamOffenseGame{
			Team: side.team, Season: game.Season, Week: game.Week, Home: side.home,
			Points: points, PassYards: passYards, RushYards: rushYards,
			PassTDs: passTDs, RushTDs: rushTDs, Turnovers: turnovers, SacksAllowed: sacksAllowed,
		}
		store.AddOffenseGame(line)
		lines[side.team] = line
		if side.home {
			game.HomeScore = int(points)
		} else {
			game.AwayScore = int(points)
		}
		playerLines(store, rosters[side.team], game, side.home, passYards, rushYards, passTDs, rushTDs, rng)
	}

	// Each side's defensive line mirrors the other side's offense.
	mirror(store, game, lines)
}

// playerLines splits team totals across the roster by positional share.
func playerLines(store *repository.MemoryStore, roster []rosterSpot, game *stats.Game, home bool, passYards, rushYards, passTDs, rushTDs float64, rng *rand.Rand) {
	var rbSkill, wrSkill float64
	for _, spot := range roster {
		switch spot.info.Position {
		case stats.RB:
			rbSkill += spot.skill
		case stats.WR:
			wrSkill += spot.skill
		}
	}

	for _, spot := range roster {
		line := stats.PlayerGame{
			PlayerID: spot.info.ID,
			GameID:   game.ID,
			Season:   game.Season,
			Week:     game.Week,
			Team:     spot.info.Team,
			Home:     home,
		}
		switch spot.info.Position {
		case stats.QB:
			line.PassYards = passYards
			line.PassTDs = passTDs
			line.PassAttempts = 28 + rng.Float64()*12
			line.PassINTs = roundStat(rng.Float64() * 1.4)
			line.RushYards = rng.Float64() * 20
		case stats.RB:
			share := spot.skill / rbSkill
			line.RushYards = rushYards * share
			line.RushTDs = roundStat(rushTDs * share)
			line.RushAttempts = 6 + share*18
			line.Receptions = roundStat(1 + share*4)
			line.RecYards = line.Receptions * (5 + rng.Float64()*4)
			line.Targets = line.Receptions + roundStat(rng.Float64()*2)
		case stats.WR:
			share := spot.skill / wrSkill
			line.RecYards = passYards * 0.75 * share
			line.Receptions = roundStat(2 + share*10)
			line.RecTDs = roundStat(passTDs * share)
			line.Targets = line.Receptions + roundStat(1+rng.Float64()*3)
		case stats.TE:
			line.RecYards = passYards * 0.18
			line.Receptions = roundStat(2 + rng.Float64()*4)
			line.RecTDs = roundStat(passTDs * 0.2)
			line.Targets = line.Receptions + roundStat(rng.Float64()*2)
		}
		store.AddPlayerGame(line)
	}
}

// mirror derives each team's defensive line from the opponent's offense.
func mirror(store *repository.MemoryStore, game *stats.Game, lines map[string]stats.TeamOffenseGame) {
	home, away := lines[game.HomeTeam], lines[game.AwayTeam]
	add := func(team string, isHome bool, opp stats.TeamOffenseGame) {
		store.AddDefenseGame(stats.TeamDefenseGame{
			Team: team, GameID: game.ID, Season: game.Season, Week: game.Week, Home: isHome,
			PointsAllowed:    opp.Points,
			YardsAllowed:     opp.PassYards + opp.RushYards,
			PassYardsAllowed: opp.PassYards,
			RushYardsAllowed: opp.RushYards,
			Sacks:            opp.SacksAllowed,
			Interceptions:    opp.Turnovers * 0.6,
			FumblesRecovered: opp.Turnovers * 0.4,
		})
	}
	add(game.HomeTeam, true, away)
	add(game.AwayTeam, false, home)
}

// injuryReport flags a deterministic sample of players. Teams are visited in
// slice order; ranging over the rosters map would consume rng draws in a
// different order each run.
func injuryReport(teams []string, rosters map[string][]rosterSpot, rate float64, rng *rand.Rand) []stats.InjuryRecord {
	statuses := []stats.InjuryStatus{stats.StatusQuestionable, stats.StatusDoubtful, stats.StatusOut}
	var report []stats.InjuryRecord
	for _, team := range teams {
		for _, spot := range rosters[team] {
			if rng.Float64() >= rate {
				continue
			}
			report = append(report, stats.InjuryRecord{
				PlayerID:   spot.info.ID,
				Team:       spot.info.Team,
				Position:   string(spot.info.Position),
				Status:     statuses[rng.Intn(len(statuses))],
				InjuryType: "undisclosed",
				Starter:    spot.skill > 0.7,
			})
		}
	}
	return report
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundStat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return float64(int(v + 0.5))
}
