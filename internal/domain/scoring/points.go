package scoring

import "github.com/Eda2353/nfl/internal/domain/stats"

// PlayerPoints is a player's fantasy score for one game, with breakdown.
type PlayerPoints struct {
	Total     float64
	Passing   float64
	Rushing   float64
	Receiving float64
	Bonus     float64
	Penalty   float64
}

// DefensePoints is a team defense's fantasy score for one game, with breakdown.
type DefensePoints struct {
	Total         float64
	PointsAllowed float64
	Turnovers     float64
	Sacks         float64
	Touchdowns    float64
	Safeties      float64
}

// PlayerPoints scores a single player game line.
func (r Rules) PlayerPoints(g stats.PlayerGame) PlayerPoints {
	var p PlayerPoints

	p.Passing = g.PassYards*r.PassYardPoint + g.PassTDs*r.PassTDPoints
	p.Rushing = g.RushYards*r.RushYardPoint + g.RushTDs*r.RushTDPoints
	p.Receiving = g.Receptions*r.ReceptionPoints +
		g.RecYards*r.RecYardPoint +
		g.RecTDs*r.RecTDPoints

	p.Penalty = g.PassINTs*r.PassIntPoints + (g.RushFumbles+g.RecFumbles)*r.FumblePoints

	if r.YardageBonuses {
		if g.RushYards >= 100 {
			p.Bonus += 3
		}
		if g.RecYards >= 100 {
			p.Bonus += 3
		}
		if g.PassYards >= 300 {
			p.Bonus += 3
		}
	}

	p.Total = p.Passing + p.Rushing + p.Receiving + p.Bonus + p.Penalty
	return p
}

// DefensePoints scores a single team-defense game line.
func (r Rules) DefensePoints(g stats.TeamDefenseGame) DefensePoints {
	var p DefensePoints

	switch pa := g.PointsAllowed; {
	case pa <= 0:
		p.PointsAllowed = r.PointsAllowedTiers[0]
	case pa <= 6:
		p.PointsAllowed = r.PointsAllowedTiers[1]
	case pa <= 13:
		p.PointsAllowed = r.PointsAllowedTiers[2]
	case pa <= 20:
		p.PointsAllowed = r.PointsAllowedTiers[3]
	case pa <= 27:
		p.PointsAllowed = r.PointsAllowedTiers[4]
	case pa <= 34:
		p.PointsAllowed = r.PointsAllowedTiers[5]
	default:
		p.PointsAllowed = r.PointsAllowedTiers[6]
	}

	p.Turnovers = g.Interceptions*r.IntPoints + g.FumblesRecovered*r.FumbleRecoveryPoints
	p.Sacks = g.Sacks * r.SackPoints
	p.Touchdowns = g.DefensiveTDs * r.DefensiveTDPoints
	p.Safeties = g.Safeties * r.SafetyPoints

	p.Total = p.PointsAllowed + p.Turnovers + p.Sacks + p.Touchdowns + p.Safeties
	return p
}
