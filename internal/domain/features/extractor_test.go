package features

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Eda2353/nfl/internal/domain/matchup"
	"github.com/Eda2353/nfl/internal/domain/scoring"
	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/internal/domain/strength"
)

type fakeStore struct {
	schedule    []stats.Game
	offense     []stats.TeamOffenseGame
	defense     []stats.TeamDefenseGame
	players     []stats.PlayerInfo
	playerGames map[string][]stats.PlayerGame
}

func (f *fakeStore) Schedule(_ context.Context, season int) ([]stats.Game, error) {
	var out []stats.Game
	for _, g := range f.schedule {
		if g.Season == season {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) OffenseGames(_ context.Context, season int) ([]stats.TeamOffenseGame, error) {
	var out []stats.TeamOffenseGame
	for _, g := range f.offense {
		if g.Season == season {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) DefenseGames(_ context.Context, season int) ([]stats.TeamDefenseGame, error) {
	var out []stats.TeamDefenseGame
	for _, g := range f.defense {
		if g.Season == season {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) Players(_ context.Context, _ int) ([]stats.PlayerInfo, error) {
	return f.players, nil
}

func (f *fakeStore) Games(_ context.Context, playerID string) ([]stats.PlayerGame, error) {
	return f.playerGames[playerID], nil
}

// seededStore builds two teams with six played weeks and a week-7 matchup,
// plus one WR with a steadily improving stat line.
func seededStore() *fakeStore {
	f := &fakeStore{playerGames: map[string][]stats.PlayerGame{}}
	teams := []string{"KC", "SF"}
	for week := 1; week <= 7; week++ {
		f.schedule = append(f.schedule, stats.Game{
			ID: "g", Season: 2024, Week: week,
			HomeTeam: "KC", AwayTeam: "SF", Played: week < 7,
		})
	}
	for week := 1; week <= 6; week++ {
		for i, team := range teams {
			base := float64(20 + 6*i)
			f.offense = append(f.offense, stats.TeamOffenseGame{
				Team: team, Season: 2024, Week: week,
				Points: base, PassYards: base * 10, RushYards: base * 5,
				PassTDs: 1.5, RushTDs: 1, Turnovers: 1, SacksAllowed: 2,
			})
			f.defense = append(f.defense, stats.TeamDefenseGame{
				Team: team, Season: 2024, Week: week, Home: week%2 == 0,
				PointsAllowed: 30 - base/2, PassYardsAllowed: 240, RushYardsAllowed: 110,
				YardsAllowed: 350, Sacks: 2 + float64(i), Interceptions: 1, FumblesRecovered: 0.5,
			})
		}
	}
	f.players = []stats.PlayerInfo{{ID: "wr1", Name: "Wide Out", Position: stats.WR, Team: "KC"}}
	// Most recent first: 110, 100, 90, 80, 60 receiving yards.
	yards := []float64{110, 100, 90, 80, 60}
	for i, y := range yards {
		f.playerGames["wr1"] = append(f.playerGames["wr1"], stats.PlayerGame{
			PlayerID: "wr1", Season: 2024, Week: 6 - i, Team: "KC", Home: i%2 == 0,
			Receptions: 6, RecYards: y, Targets: 9,
		})
	}
	return f
}

func newExtractor(f *fakeStore) *Extractor {
	return New(f, f, f, matchup.New(strength.New(f)))
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	rules, _ := scoring.System("Standard")

	Convey("Given a receiver with five games of history", t, func() {
		store := seededStore()
		extractor := newExtractor(store)
		player := store.players[0]

		Convey("When extracting for week 7", func() {
			vec, err := extractor.Extract(ctx, player, 2024, 7, rules)

			Convey("Then the vector concatenates base features with the matchup bundle", func() {
				So(err, ShouldBeNil)
				So(vec.Values, ShouldHaveLength, VectorSize)
				So(vec.Names, ShouldHaveLength, VectorSize)
				So(vec.Names[0], ShouldEqual, "recency_avg")
				So(vec.Names[BaseFeatureCount], ShouldEqual, "opponent_pass_defense_rank")
				So(vec.Position, ShouldEqual, stats.WR)
				So(vec.Opponent, ShouldEqual, "SF")
				So(vec.Home, ShouldBeTrue)
			})

			Convey("Then the recency average weights the newest games heaviest", func() {
				So(err, ShouldBeNil)
				// Standard scoring: 11.0, 10.0, 9.0 points for the last three.
				So(vec.Values[0], ShouldAlmostEqual, (11*3+10*2+9*1)/6.0, 0.0001)
			})

			Convey("Then the season average covers all five games", func() {
				So(err, ShouldBeNil)
				So(vec.Values[1], ShouldAlmostEqual, (11+10+9+8+6)/5.0, 0.0001)
				So(vec.Values[2], ShouldEqual, 5)
			})

			Convey("Then the trend slope is positive for an improving player", func() {
				So(err, ShouldBeNil)
				So(vec.Values[5], ShouldBeGreaterThan, 0)
			})

			Convey("Then the usage rate reflects targets per game", func() {
				So(err, ShouldBeNil)
				So(vec.Values[7], ShouldAlmostEqual, 9.0, 0.0001)
			})
		})

		Convey("When extracting for week 4 only earlier games count", func() {
			vec, err := extractor.Extract(ctx, player, 2024, 4, rules)

			Convey("Then later games never leak into the features", func() {
				So(err, ShouldBeNil)
				So(vec.Values[2], ShouldEqual, 2) // weeks 2 and 3 only
			})
		})
	})

	Convey("Given a player with no history at all", t, func() {
		store := seededStore()
		store.players = append(store.players, stats.PlayerInfo{ID: "rookie", Position: stats.RB, Team: "KC"})
		extractor := newExtractor(store)

		Convey("When extracting", func() {
			_, err := extractor.Extract(ctx, store.players[1], 2024, 7, rules)

			Convey("Then the player is reported unavailable, never defaulted", func() {
				So(errors.Is(err, ErrFeatureUnavailable), ShouldBeTrue)
			})
		})
	})

	Convey("Given a team on bye in the target week", t, func() {
		store := seededStore()
		store.players[0].Team = "GB"
		extractor := newExtractor(store)

		Convey("When extracting", func() {
			_, err := extractor.Extract(ctx, store.players[0], 2024, 7, rules)

			Convey("Then the missing matchup is a distinct condition", func() {
				So(errors.Is(err, ErrNoMatchup), ShouldBeTrue)
			})
		})
	})
}

func TestExtractDefense(t *testing.T) {
	ctx := context.Background()
	rules, _ := scoring.System("FanDuel")

	Convey("Given a defense with six weeks of history", t, func() {
		store := seededStore()
		extractor := newExtractor(store)

		Convey("When extracting for week 7", func() {
			vec, err := extractor.ExtractDefense(ctx, "SF", 2024, 7, rules)

			Convey("Then the vector carries the DST bundle after the base features", func() {
				So(err, ShouldBeNil)
				So(vec.Values, ShouldHaveLength, VectorSize)
				So(vec.Position, ShouldEqual, stats.DST)
				So(vec.Names[BaseFeatureCount], ShouldEqual, "opponent_offense_rank")
				So(vec.Opponent, ShouldEqual, "KC")
			})

			Convey("Then havoc plays drive the usage rate", func() {
				So(err, ShouldBeNil)
				So(vec.Values[7], ShouldAlmostEqual, 3+1+0.5, 0.0001)
			})
		})

		Convey("When the team has no defensive history", func() {
			_, err := extractor.ExtractDefense(ctx, "GB", 2024, 7, rules)

			Convey("Then it is unavailable", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
