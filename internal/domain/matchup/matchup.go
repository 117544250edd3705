// Package matchup derives position-specific feature bundles and bounded
// multiplicative modifiers from a pair of team strength snapshots.
package matchup

import (
	"context"
	"fmt"

	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/internal/domain/strength"
)

// BundleSize is the fixed number of features in every bundle, regardless of
// position variant.
const BundleSize = 5

// Modifier bounds. Every multiplicative modifier produced here is clamped to
// this range for any input strength pair.
const (
	ModifierFloor = 0.5
	ModifierCeil  = 1.5
)

// Regime buckets the relative quality of an offense/defense pairing. A score
// at exactly the league midpoint counts as strong, so classification is
// deterministic.
type Regime string

const (
	RegimeStrongStrong Regime = "strong_offense/strong_defense"
	RegimeStrongWeak   Regime = "strong_offense/weak_defense"
	RegimeWeakStrong   Regime = "weak_offense/strong_defense"
	RegimeWeakWeak     Regime = "weak_offense/weak_defense"
)

func classify(offense, defense float64) Regime {
	strongOff := offense >= strength.NeutralScore
	strongDef := defense >= strength.NeutralScore
	switch {
	case strongOff && strongDef:
		return RegimeStrongStrong
	case strongOff:
		return RegimeStrongWeak
	case strongDef:
		return RegimeWeakStrong
	default:
		return RegimeWeakWeak
	}
}

// Bundle is an ordered set of exactly BundleSize named features for one
// (offense, defense, position, week) pairing.
type Bundle struct {
	Position stats.Position
	Regime   Regime
	Names    []string
	Values   []float64
}

// Analyzer builds matchup bundles from league-wide strength snapshots.
type Analyzer struct {
	scorer *strength.Scorer
}

// New creates an Analyzer on top of a strength scorer.
func New(scorer *strength.Scorer) *Analyzer {
	return &Analyzer{scorer: scorer}
}

// Features derives the offensive-position bundle for a player on offenseTeam
// facing defenseTeam in the given week.
func (a *Analyzer) Features(ctx context.Context, offenseTeam, defenseTeam string, pos stats.Position, season, week int) (Bundle, error) {
	league, err := a.scorer.League(ctx, season, week)
	if err != nil {
		return Bundle{}, fmt.Errorf("league snapshots: %w", err)
	}
	off := pick(league, offenseTeam, season, week)
	def := pick(league, defenseTeam, season, week)

	switch pos {
	case stats.QB:
		return a.quarterback(league, off, def), nil
	case stats.RB:
		return a.runningBack(league, off, def), nil
	case stats.WR:
		return a.wideReceiver(league, off, def), nil
	case stats.TE:
		return a.tightEnd(league, off, def), nil
	default:
		return Bundle{}, fmt.Errorf("%w: %s", ErrUnsupportedPosition, pos)
	}
}

// DefenseFeatures derives the DST bundle: how favorable the opposing offense
// is for the defense's own scoring.
func (a *Analyzer) DefenseFeatures(ctx context.Context, defenseTeam, opponentTeam string, season, week int) (Bundle, error) {
	league, err := a.scorer.League(ctx, season, week)
	if err != nil {
		return Bundle{}, fmt.Errorf("league snapshots: %w", err)
	}
	def := pick(league, defenseTeam, season, week)
	opp := pick(league, opponentTeam, season, week)

	defOverall := (def.DefensivePass + def.DefensiveRush) / 2
	oppOverall := (opp.OffensivePass + opp.OffensiveRush) / 2
	regime := classify(oppOverall, defOverall)

	return Bundle{
		Position: stats.DST,
		Regime:   regime,
		Names: []string{
			"opponent_offense_rank",
			"sack_opportunity",
			"turnover_opportunity",
			"points_suppression_modifier",
			"pressure_modifier",
		},
		Values: []float64{
			offenseRank(league, opponentTeam),
			clamp01((def.Pressure + (100 - opp.Protection)) / 200),
			clamp01((def.Takeaway + (100 - opp.BallSecurity)) / 200),
			modifier(defOverall-oppOverall, 200, classify(defOverall, oppOverall)),
			modifier(def.Pressure-opp.Protection, 200, classify(def.Pressure, opp.Protection)),
		},
	}, nil
}

func (a *Analyzer) quarterback(league []strength.Snapshot, off, def strength.Snapshot) Bundle {
	regime := classify(off.OffensivePass, def.DefensivePass)
	gap := off.OffensivePass - def.DefensivePass
	return Bundle{
		Position: stats.QB,
		Regime:   regime,
		Names: []string{
			"opponent_pass_defense_rank",
			"pass_rush_pressure_rate",
			"turnover_creation_rate",
			"efficiency_modifier",
			"ceiling_modifier",
		},
		Values: []float64{
			passDefenseRank(league, def.Team),
			clamp01(def.Pressure / 100),
			clamp01(def.Takeaway / 100),
			modifier(gap, 200, regime),
			modifier(gap, 150, regime),
		},
	}
}

func (a *Analyzer) runningBack(league []strength.Snapshot, off, def strength.Snapshot) Bundle {
	regime := classify(off.OffensiveRush, def.DefensiveRush)
	gap := off.OffensiveRush - def.DefensiveRush
	return Bundle{
		Position: stats.RB,
		Regime:   regime,
		Names: []string{
			"opponent_rush_defense_rank",
			"receiving_weakness",
			"volume_modifier",
			"efficiency_modifier",
			"goal_line_advantage",
		},
		Values: []float64{
			rushDefenseRank(league, def.Team),
			// Checkdown susceptibility tracks pass coverage, not the
			// front seven.
			clamp01((100 - def.DefensivePass) / 100),
			modifier(gap, 400, regime),
			modifier(gap, 200, regime),
			clamp01((off.OffensiveRush - def.DefensiveRush + 100) / 200),
		},
	}
}

func (a *Analyzer) wideReceiver(league []strength.Snapshot, off, def strength.Snapshot) Bundle {
	regime := classify(off.OffensivePass, def.DefensivePass)
	gap := off.OffensivePass - def.DefensivePass
	return Bundle{
		Position: stats.WR,
		Regime:   regime,
		Names: []string{
			"opponent_pass_defense_rank",
			"coverage_weakness",
			"pressure_impact",
			"efficiency_modifier",
			"ceiling_modifier",
		},
		Values: []float64{
			passDefenseRank(league, def.Team),
			clamp01((100 - (0.7*def.DefensivePass + 0.3*def.Takeaway)) / 100),
			// Pressure depresses deep routes unless the line holds up.
			clampModifier(1 + (off.Protection-def.Pressure)/200),
			modifier(gap, 200, regime),
			modifier(gap, 150, regime),
		},
	}
}

func (a *Analyzer) tightEnd(league []strength.Snapshot, off, def strength.Snapshot) Bundle {
	regime := classify(off.OffensivePass, def.DefensivePass)
	gap := off.OffensivePass - def.DefensivePass
	return Bundle{
		Position: stats.TE,
		Regime:   regime,
		Names: []string{
			"coverage_weakness",
			"opponent_pass_defense_rank",
			"checkdown_opportunity",
			"efficiency_modifier",
			"red_zone_advantage",
		},
		Values: []float64{
			// Middle-of-field coverage blends pass and run defense,
			// where linebackers and safeties live.
			clamp01((100 - (0.5*def.DefensivePass + 0.5*def.DefensiveRush)) / 100),
			passDefenseRank(league, def.Team),
			// Heavy pass rush pushes targets down to the tight end.
			clamp01(def.Pressure / 100),
			modifier(gap, 200, regime),
			clamp01((off.OffensivePass - def.DefensiveRush + 100) / 200),
		},
	}
}

// modifier maps a strength gap in [-100,100] onto a multiplier around 1.0
// with the given divisor controlling steepness, shifts it by the regime
// centering, and clamps the result.
func modifier(gap, divisor float64, regime Regime) float64 {
	m := 1 + gap/divisor
	switch regime {
	case RegimeStrongWeak:
		m += 0.05
	case RegimeWeakStrong:
		m -= 0.05
	}
	return clampModifier(m)
}

func clampModifier(m float64) float64 {
	if m < ModifierFloor {
		return ModifierFloor
	}
	if m > ModifierCeil {
		return ModifierCeil
	}
	return m
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

// pick finds a team's snapshot in a league set, defaulting to neutral when
// the team has no data.
func pick(league []strength.Snapshot, team string, season, week int) strength.Snapshot {
	for _, snap := range league {
		if snap.Team == team {
			return snap
		}
	}
	return strength.Snapshot{
		Team: team, Season: season, AsOfWeek: week,
		OffensivePass: strength.NeutralScore, OffensiveRush: strength.NeutralScore,
		DefensivePass: strength.NeutralScore, DefensiveRush: strength.NeutralScore,
		Pressure: strength.NeutralScore, Takeaway: strength.NeutralScore,
		Protection: strength.NeutralScore, BallSecurity: strength.NeutralScore,
		Neutral: true,
	}
}

// passDefenseRank ranks a team's pass defense across the league, 1 = best.
// Unknown teams rank mid-pack.
func passDefenseRank(league []strength.Snapshot, team string) float64 {
	return rank(league, team, func(s strength.Snapshot) float64 { return s.DefensivePass })
}

func rushDefenseRank(league []strength.Snapshot, team string) float64 {
	return rank(league, team, func(s strength.Snapshot) float64 { return s.DefensiveRush })
}

func offenseRank(league []strength.Snapshot, team string) float64 {
	return rank(league, team, func(s strength.Snapshot) float64 {
		return (s.OffensivePass + s.OffensiveRush) / 2
	})
}

func rank(league []strength.Snapshot, team string, score func(strength.Snapshot) float64) float64 {
	var own float64
	found := false
	for _, snap := range league {
		if snap.Team == team {
			own = score(snap)
			found = true
			break
		}
	}
	if len(league) == 0 {
		return 16.5 // mid-pack of a full 32-team league
	}
	if !found {
		return float64(len(league)+1) / 2
	}
	r := 1
	for _, snap := range league {
		if snap.Team != team && score(snap) > own {
			r++
		}
	}
	return float64(r)
}
