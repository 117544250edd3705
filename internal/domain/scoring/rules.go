// Package scoring converts raw statistical lines into fantasy points under a
// named scoring system.
package scoring

import "fmt"

// Rules holds the point coefficients for one scoring system.
type Rules struct {
	Name string

	PassYardPoint float64
	PassTDPoints  float64
	PassIntPoints float64

	RushYardPoint float64
	RushTDPoints  float64

	ReceptionPoints float64
	RecYardPoint    float64
	RecTDPoints     float64

	FumblePoints float64

	// YardageBonuses enables the DFS bonuses: +3 for 100 rushing yards,
	// +3 for 100 receiving yards, +3 for 300 passing yards.
	YardageBonuses bool

	// Defense / special teams.
	SackPoints            float64
	IntPoints             float64
	FumbleRecoveryPoints  float64
	DefensiveTDPoints     float64
	SafetyPoints          float64
	// PointsAllowedTiers holds the tiered DST score for points allowed:
	// shutout, 1-6, 7-13, 14-20, 21-27, 28-34, 35+.
	PointsAllowedTiers [7]float64
}

var dstTiers = [7]float64{10, 7, 4, 1, 0, -1, -4}

func baseRules(name string, receptionPoints float64, bonuses bool) Rules {
	return Rules{
		Name:            name,
		PassYardPoint:   0.04,
		PassTDPoints:    4,
		PassIntPoints:   -1,
		RushYardPoint:   0.1,
		RushTDPoints:    6,
		ReceptionPoints: receptionPoints,
		RecYardPoint:    0.1,
		RecTDPoints:     6,
		FumblePoints:    -2,
		YardageBonuses:  bonuses,

		SackPoints:           1,
		IntPoints:            2,
		FumbleRecoveryPoints: 2,
		DefensiveTDPoints:    6,
		SafetyPoints:         2,
		PointsAllowedTiers:   dstTiers,
	}
}

var systems = map[string]Rules{
	"Standard":   baseRules("Standard", 0, false),
	"HalfPPR":    baseRules("HalfPPR", 0.5, false),
	"PPR":        baseRules("PPR", 1.0, false),
	"FanDuel":    baseRules("FanDuel", 0.5, true),
	"DraftKings": baseRules("DraftKings", 1.0, true),
}

// Default returns the FanDuel rules, the system used when nothing else is
// configured.
func Default() Rules {
	return baseRules("FanDuel", 0.5, true)
}

// System returns the rules for a named scoring system.
func System(name string) (Rules, error) {
	r, ok := systems[name]
	if !ok {
		return Rules{}, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	return r, nil
}

// Systems lists the recognized scoring system names.
func Systems() []string {
	names := make([]string, 0, len(systems))
	for name := range systems {
		names = append(names, name)
	}
	return names
}
