// Package strength converts raw team game logs into normalized 0-100 strength
// scores, split by passing and rushing axes.
package strength

import (
	"context"
	"fmt"
	"sort"

	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/pkg/metrics"
)

// NeutralScore is the league-average score used when a team has too little
// history in the window even after widening to the prior season.
const NeutralScore = 50.0

// Default window configuration.
const (
	defaultWindowWeeks = 8
	defaultMinGames    = 3
)

// Snapshot is a team's normalized strength as of a given week. Every score is
// a percentile-like value in [0,100], higher = stronger, computed only from
// games strictly before AsOfWeek.
type Snapshot struct {
	Team     string
	Season   int
	AsOfWeek int

	OffensivePass float64
	OffensiveRush float64
	DefensivePass float64
	DefensiveRush float64

	// Defensive sub-signals consumed by the matchup analyzer.
	Pressure float64 // sack generation
	Takeaway float64 // turnover creation

	// Offensive sub-signals consumed by the DST matchup features.
	Protection   float64 // pass blocking (few sacks allowed)
	BallSecurity float64 // few turnovers committed

	// Neutral marks a snapshot that fell back to the league-average score
	// because the team had too few games even after window widening.
	Neutral bool
	Games   int
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWindowWeeks bounds the rolling in-season window.
func WithWindowWeeks(weeks int) Option {
	return func(s *Scorer) {
		if weeks > 0 {
			s.windowWeeks = weeks
		}
	}
}

// WithMinGames sets the in-window game count below which the window widens to
// the prior season.
func WithMinGames(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.minGames = n
		}
	}
}

// Scorer computes strength snapshots from a team stat repository.
type Scorer struct {
	teams       stats.TeamStatRepo
	windowWeeks int
	minGames    int
}

// New creates a Scorer with configuration options.
func New(teams stats.TeamStatRepo, opts ...Option) *Scorer {
	s := &Scorer{
		teams:       teams,
		windowWeeks: defaultWindowWeeks,
		minGames:    defaultMinGames,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type offenseAgg struct {
	games        int
	points       float64
	passYards    float64
	rushYards    float64
	passTDs      float64
	rushTDs      float64
	turnovers    float64
	sacksAllowed float64
}

type defenseAgg struct {
	games            int
	pointsAllowed    float64
	passYardsAllowed float64
	rushYardsAllowed float64
	turnoversForced  float64
	sacks            float64
}

// Score computes the strength snapshot for one team as of (season, asOfWeek).
// Insufficient history yields a neutral snapshot, never an error.
func (s *Scorer) Score(ctx context.Context, team string, season, asOfWeek int) (Snapshot, error) {
	league, err := s.League(ctx, season, asOfWeek)
	if err != nil {
		return Snapshot{}, err
	}
	for _, snap := range league {
		if snap.Team == team {
			return snap, nil
		}
	}
	metrics.RecordNeutralSnapshot()
	return neutralSnapshot(team, season, asOfWeek), nil
}

// League computes snapshots for every team with game data in the window,
// normalized against each other.
func (s *Scorer) League(ctx context.Context, season, asOfWeek int) ([]Snapshot, error) {
	off, def, err := s.aggregate(ctx, season, asOfWeek)
	if err != nil {
		return nil, err
	}

	// Teams short on games even after widening score neutral.
	type rates struct {
		team string
		off  offenseAgg
		def  defenseAgg
	}
	var qualified []rates
	var short []string
	for team, o := range off {
		d := def[team]
		if o.games < s.minGames || d.games < s.minGames {
			short = append(short, team)
			continue
		}
		qualified = append(qualified, rates{team: team, off: o, def: d})
	}
	sort.Slice(qualified, func(i, j int) bool { return qualified[i].team < qualified[j].team })
	sort.Strings(short)

	perGame := func(total float64, games int) float64 { return total / float64(games) }

	var (
		points, passYds, rushYds, passTDs, rushTDs, turnovers, sacksAllowed []float64
		ptsAllowed, passYdsAll, rushYdsAll, toForced, sacks                 []float64
	)
	for _, r := range qualified {
		points = append(points, perGame(r.off.points, r.off.games))
		passYds = append(passYds, perGame(r.off.passYards, r.off.games))
		rushYds = append(rushYds, perGame(r.off.rushYards, r.off.games))
		passTDs = append(passTDs, perGame(r.off.passTDs, r.off.games))
		rushTDs = append(rushTDs, perGame(r.off.rushTDs, r.off.games))
		turnovers = append(turnovers, perGame(r.off.turnovers, r.off.games))
		sacksAllowed = append(sacksAllowed, perGame(r.off.sacksAllowed, r.off.games))

		ptsAllowed = append(ptsAllowed, perGame(r.def.pointsAllowed, r.def.games))
		passYdsAll = append(passYdsAll, perGame(r.def.passYardsAllowed, r.def.games))
		rushYdsAll = append(rushYdsAll, perGame(r.def.rushYardsAllowed, r.def.games))
		toForced = append(toForced, perGame(r.def.turnoversForced, r.def.games))
		sacks = append(sacks, perGame(r.def.sacks, r.def.games))
	}

	snaps := make([]Snapshot, 0, len(qualified)+len(short))
	for i, r := range qualified {
		ptsPct := percentile(points, points[i], true)
		toPct := percentile(turnovers, turnovers[i], false)
		paPct := percentile(ptsAllowed, ptsAllowed[i], false)
		tfPct := percentile(toForced, toForced[i], true)
		sackPct := percentile(sacks, sacks[i], true)

		snaps = append(snaps, Snapshot{
			Team:     r.team,
			Season:   season,
			AsOfWeek: asOfWeek,

			OffensivePass: 0.4*ptsPct + 0.3*percentile(passYds, passYds[i], true) +
				0.2*percentile(passTDs, passTDs[i], true) + 0.1*toPct,
			OffensiveRush: 0.4*ptsPct + 0.3*percentile(rushYds, rushYds[i], true) +
				0.2*percentile(rushTDs, rushTDs[i], true) + 0.1*toPct,
			DefensivePass: 0.4*paPct + 0.3*percentile(passYdsAll, passYdsAll[i], false) +
				0.2*tfPct + 0.1*sackPct,
			DefensiveRush: 0.4*paPct + 0.3*percentile(rushYdsAll, rushYdsAll[i], false) +
				0.2*tfPct + 0.1*sackPct,

			Pressure:     sackPct,
			Takeaway:     tfPct,
			Protection:   percentile(sacksAllowed, sacksAllowed[i], false),
			BallSecurity: toPct,

			Games: r.off.games,
		})
	}
	for _, team := range short {
		metrics.RecordNeutralSnapshot()
		snaps = append(snaps, neutralSnapshot(team, season, asOfWeek))
	}
	return snaps, nil
}

// aggregate sums game lines inside the rolling window, widening to the prior
// season when the current season is too thin league-wide (early weeks).
func (s *Scorer) aggregate(ctx context.Context, season, asOfWeek int) (map[string]offenseAgg, map[string]defenseAgg, error) {
	before := stats.StrictlyBefore(season, asOfWeek)
	minWeek := asOfWeek - s.windowWeeks

	off := make(map[string]offenseAgg)
	def := make(map[string]defenseAgg)

	addSeason := func(year int, windowed bool) error {
		offGames, err := s.teams.OffenseGames(ctx, year)
		if err != nil {
			return fmt.Errorf("offense games %d: %w", year, err)
		}
		defGames, err := s.teams.DefenseGames(ctx, year)
		if err != nil {
			return fmt.Errorf("defense games %d: %w", year, err)
		}
		for _, g := range offGames {
			if !before(g.Season, g.Week) {
				continue
			}
			if windowed && g.Week < minWeek {
				continue
			}
			a := off[g.Team]
			a.games++
			a.points += g.Points
			a.passYards += g.PassYards
			a.rushYards += g.RushYards
			a.passTDs += g.PassTDs
			a.rushTDs += g.RushTDs
			a.turnovers += g.Turnovers
			a.sacksAllowed += g.SacksAllowed
			off[g.Team] = a
		}
		for _, g := range defGames {
			if !before(g.Season, g.Week) {
				continue
			}
			if windowed && g.Week < minWeek {
				continue
			}
			a := def[g.Team]
			a.games++
			a.pointsAllowed += g.PointsAllowed
			a.passYardsAllowed += g.PassYardsAllowed
			a.rushYardsAllowed += g.RushYardsAllowed
			a.turnoversForced += g.Interceptions + g.FumblesRecovered
			a.sacks += g.Sacks
			def[g.Team] = a
		}
		return nil
	}

	if err := addSeason(season, true); err != nil {
		return nil, nil, err
	}

	// Early in the season nobody has enough games; widen to the prior
	// season rather than failing.
	thin := len(off) == 0
	for _, a := range off {
		if a.games < s.minGames {
			thin = true
			break
		}
	}
	if thin {
		if err := addSeason(season-1, false); err != nil {
			return nil, nil, err
		}
	}
	return off, def, nil
}

func neutralSnapshot(team string, season, asOfWeek int) Snapshot {
	return Snapshot{
		Team:          team,
		Season:        season,
		AsOfWeek:      asOfWeek,
		OffensivePass: NeutralScore,
		OffensiveRush: NeutralScore,
		DefensivePass: NeutralScore,
		DefensiveRush: NeutralScore,
		Pressure:      NeutralScore,
		Takeaway:      NeutralScore,
		Protection:    NeutralScore,
		BallSecurity:  NeutralScore,
		Neutral:       true,
	}
}

// percentile returns the percentile-like rank of v within values, in [0,100].
// Equal values share rank mass so ties are deterministic.
func percentile(values []float64, v float64, higherBetter bool) float64 {
	if len(values) == 0 {
		return NeutralScore
	}
	if len(values) == 1 {
		return NeutralScore
	}
	var below, equal float64
	for _, x := range values {
		switch {
		case x < v:
			below++
		case x == v:
			equal++
		}
	}
	pct := (below + 0.5*(equal-1)) / float64(len(values)-1) * 100
	if !higherBetter {
		pct = 100 - pct
	}
	return pct
}
