package strength

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Eda2353/nfl/internal/domain/stats"
)

type fakeTeamStats struct {
	offense map[int][]stats.TeamOffenseGame
	defense map[int][]stats.TeamDefenseGame
}

func (f *fakeTeamStats) OffenseGames(_ context.Context, season int) ([]stats.TeamOffenseGame, error) {
	return f.offense[season], nil
}

func (f *fakeTeamStats) DefenseGames(_ context.Context, season int) ([]stats.TeamDefenseGame, error) {
	return f.defense[season], nil
}

// threeTeamSeason builds a small league where KC is clearly best on offense,
// CHI clearly worst, and DEN in between, with the defensive ordering reversed.
func threeTeamSeason(season, weeks int) *fakeTeamStats {
	f := &fakeTeamStats{
		offense: map[int][]stats.TeamOffenseGame{},
		defense: map[int][]stats.TeamDefenseGame{},
	}
	type profile struct {
		team          string
		points        float64
		passYds       float64
		rushYds       float64
		passTDs       float64
		rushTDs       float64
		turnovers     float64
		sacksAllowed  float64
		pointsAllowed float64
		passYdsAll    float64
		rushYdsAll    float64
		sacks         float64
		ints          float64
		fumbles       float64
	}
	profiles := []profile{
		{"KC", 31, 300, 140, 2.5, 1.5, 0.5, 1, 26, 260, 130, 1.5, 0.5, 0.3},
		{"DEN", 22, 230, 110, 1.5, 1.0, 1.0, 2, 21, 220, 110, 2.5, 0.8, 0.5},
		{"CHI", 14, 180, 85, 0.8, 0.5, 2.0, 3.5, 16, 185, 92, 3.5, 1.2, 0.8},
	}
	for week := 1; week <= weeks; week++ {
		for _, p := range profiles {
			f.offense[season] = append(f.offense[season], stats.TeamOffenseGame{
				Team: p.team, Season: season, Week: week,
				Points: p.points, PassYards: p.passYds, RushYards: p.rushYds,
				PassTDs: p.passTDs, RushTDs: p.rushTDs,
				Turnovers: p.turnovers, SacksAllowed: p.sacksAllowed,
			})
			f.defense[season] = append(f.defense[season], stats.TeamDefenseGame{
				Team: p.team, Season: season, Week: week,
				PointsAllowed: p.pointsAllowed, PassYardsAllowed: p.passYdsAll,
				RushYardsAllowed: p.rushYdsAll, YardsAllowed: p.passYdsAll + p.rushYdsAll,
				Sacks: p.sacks, Interceptions: p.ints, FumblesRecovered: p.fumbles,
			})
		}
	}
	return f
}

func TestScorer(t *testing.T) {
	ctx := context.Background()

	Convey("Given a league with six weeks of history", t, func() {
		repo := threeTeamSeason(2024, 6)
		scorer := New(repo)

		Convey("When scoring the strongest offense as of week 7", func() {
			snap, err := scorer.Score(ctx, "KC", 2024, 7)

			Convey("Then it ranks above league average on both offensive axes", func() {
				So(err, ShouldBeNil)
				So(snap.Neutral, ShouldBeFalse)
				So(snap.Games, ShouldEqual, 6)
				So(snap.OffensivePass, ShouldBeGreaterThan, 50)
				So(snap.OffensiveRush, ShouldBeGreaterThan, 50)
				So(snap.OffensivePass, ShouldBeLessThanOrEqualTo, 100)
			})

			Convey("Then its porous defense ranks below league average", func() {
				So(err, ShouldBeNil)
				So(snap.DefensivePass, ShouldBeLessThan, 50)
				So(snap.DefensiveRush, ShouldBeLessThan, 50)
			})
		})

		Convey("When scoring the weakest offense", func() {
			snap, err := scorer.Score(ctx, "CHI", 2024, 7)

			Convey("Then the offensive axes land at the bottom of the range", func() {
				So(err, ShouldBeNil)
				So(snap.OffensivePass, ShouldBeLessThan, 50)
				So(snap.OffensiveRush, ShouldBeLessThan, 50)
				So(snap.OffensivePass, ShouldBeGreaterThanOrEqualTo, 0)
			})

			Convey("Then its ball-hawking defense ranks above league average", func() {
				So(err, ShouldBeNil)
				So(snap.DefensivePass, ShouldBeGreaterThan, 50)
				So(snap.Pressure, ShouldBeGreaterThan, 50)
				So(snap.Takeaway, ShouldBeGreaterThan, 50)
			})

			Convey("Then its sack-prone offense scores low on protection", func() {
				So(err, ShouldBeNil)
				So(snap.Protection, ShouldBeLessThan, 50)
				So(snap.BallSecurity, ShouldBeLessThan, 50)
			})
		})

		Convey("When scoring as of week 4", func() {
			snap, err := scorer.Score(ctx, "KC", 2024, 4)

			Convey("Then only games strictly before week 4 count", func() {
				So(err, ShouldBeNil)
				So(snap.Games, ShouldEqual, 3)
			})
		})
	})

	Convey("Given a league with only two weeks of current-season history", t, func() {
		repo := threeTeamSeason(2024, 2)

		Convey("When the prior season has a full slate", func() {
			prior := threeTeamSeason(2023, 10)
			repo.offense[2023] = prior.offense[2023]
			repo.defense[2023] = prior.defense[2023]
			scorer := New(repo)

			snap, err := scorer.Score(ctx, "KC", 2024, 3)

			Convey("Then the window widens instead of going neutral", func() {
				So(err, ShouldBeNil)
				So(snap.Neutral, ShouldBeFalse)
				So(snap.Games, ShouldEqual, 12)
			})
		})

		Convey("When there is no prior season at all", func() {
			scorer := New(repo)

			snap, err := scorer.Score(ctx, "KC", 2024, 3)

			Convey("Then every axis falls back to the neutral score", func() {
				So(err, ShouldBeNil)
				So(snap.Neutral, ShouldBeTrue)
				So(snap.OffensivePass, ShouldEqual, NeutralScore)
				So(snap.DefensiveRush, ShouldEqual, NeutralScore)
				So(snap.Pressure, ShouldEqual, NeutralScore)
			})
		})
	})

	Convey("Given a team that never appears in the data", t, func() {
		repo := threeTeamSeason(2024, 6)
		scorer := New(repo)

		Convey("When scoring it", func() {
			snap, err := scorer.Score(ctx, "XYZ", 2024, 7)

			Convey("Then the snapshot is neutral rather than an error", func() {
				So(err, ShouldBeNil)
				So(snap.Neutral, ShouldBeTrue)
				So(snap.Team, ShouldEqual, "XYZ")
			})
		})
	})

	Convey("Given the league snapshot set", t, func() {
		repo := threeTeamSeason(2024, 6)
		scorer := New(repo)

		Convey("When computing all teams at once", func() {
			league, err := scorer.League(ctx, 2024, 7)

			Convey("Then every team is present and scores stay in bounds", func() {
				So(err, ShouldBeNil)
				So(league, ShouldHaveLength, 3)
				for _, snap := range league {
					So(snap.OffensivePass, ShouldBeBetweenOrEqual, 0, 100)
					So(snap.DefensivePass, ShouldBeBetweenOrEqual, 0, 100)
				}
			})
		})
	})
}

func TestPercentile(t *testing.T) {
	Convey("Given a set of per-game rates", t, func() {
		values := []float64{10, 20, 30, 40}

		Convey("When higher is better", func() {
			So(percentile(values, 40, true), ShouldEqual, 100)
			So(percentile(values, 10, true), ShouldEqual, 0)
		})

		Convey("When lower is better the scale inverts", func() {
			So(percentile(values, 10, false), ShouldEqual, 100)
			So(percentile(values, 40, false), ShouldEqual, 0)
		})

		Convey("When every value ties", func() {
			flat := []float64{5, 5, 5}

			Convey("Then everyone sits at the midpoint", func() {
				So(percentile(flat, 5, true), ShouldEqual, 50)
			})
		})
	})
}
