package gen

import (
	"context"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Eda2353/nfl/internal/adapters/repository"
	"github.com/Eda2353/nfl/internal/domain/stats"
)

func TestPopulate(t *testing.T) {
	ctx := context.Background()

	cfg := Config{
		Seasons:    []int{2023, 2024},
		Weeks:      10,
		Teams:      DefaultTeams()[:8],
		Seed:       7,
		InjuryRate: 0.2,
	}

	Convey("Given a two-season synthetic league", t, func() {
		store := repository.NewMemory()
		Populate(store, cfg)

		Convey("When reading the schedule", func() {
			schedule, err := store.Schedule(ctx, 2024)

			Convey("Then every team plays exactly once per week", func() {
				So(err, ShouldBeNil)
				So(schedule, ShouldHaveLength, 10*4)
				perWeek := map[int]map[string]int{}
				for _, g := range schedule {
					if perWeek[g.Week] == nil {
						perWeek[g.Week] = map[string]int{}
					}
					perWeek[g.Week][g.HomeTeam]++
					perWeek[g.Week][g.AwayTeam]++
				}
				for _, counts := range perWeek {
					So(counts, ShouldHaveLength, 8)
					for _, n := range counts {
						So(n, ShouldEqual, 1)
					}
				}
			})

			Convey("Then only the final current-season week is unplayed", func() {
				So(err, ShouldBeNil)
				for _, g := range schedule {
					So(g.Played, ShouldEqual, g.Week != 10)
				}
			})
		})

		Convey("When reading team lines", func() {
			offense, oerr := store.OffenseGames(ctx, 2024)
			defense, derr := store.DefenseGames(ctx, 2024)

			Convey("Then each played game yields a line per team per side", func() {
				So(oerr, ShouldBeNil)
				So(derr, ShouldBeNil)
				So(offense, ShouldHaveLength, 9*8)
				So(defense, ShouldHaveLength, 9*8)
			})

			Convey("Then defensive lines mirror the opposing offense", func() {
				So(oerr, ShouldBeNil)
				byKey := map[string]stats.TeamOffenseGame{}
				for _, g := range offense {
					byKey[g.Team+"#"+itoa(g.Week)] = g
				}
				schedule, _ := store.Schedule(ctx, 2024)
				opponentOf := map[string]string{}
				for _, g := range schedule {
					opponentOf[g.HomeTeam+"#"+itoa(g.Week)] = g.AwayTeam
					opponentOf[g.AwayTeam+"#"+itoa(g.Week)] = g.HomeTeam
				}
				for _, d := range defense {
					opp := byKey[opponentOf[d.Team+"#"+itoa(d.Week)]+"#"+itoa(d.Week)]
					So(d.PointsAllowed, ShouldEqual, opp.Points)
					So(d.PassYardsAllowed, ShouldEqual, opp.PassYards)
				}
			})
		})

		Convey("When reading rosters and histories", func() {
			players, err := store.Players(ctx, 2024)

			Convey("Then every team carries its full depth chart", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 8*7) // QB + 2 RB + 3 WR + TE
			})

			Convey("Then player histories are dense and recent-first", func() {
				So(err, ShouldBeNil)
				games, gerr := store.Games(ctx, players[0].ID)
				So(gerr, ShouldBeNil)
				So(len(games), ShouldEqual, 9+10) // played weeks across both seasons
				So(games[0].Season, ShouldEqual, 2024)
			})
		})

		Convey("When generating with the same seed twice", func() {
			other := repository.NewMemory()
			Populate(other, cfg)

			a, _ := store.OffenseGames(ctx, 2024)
			b, _ := other.OffenseGames(ctx, 2024)

			Convey("Then the data is identical", func() {
				So(b, ShouldResemble, a)
			})

			Convey("Then the injury report is identical", func() {
				ra, aerr := store.Current(ctx)
				rb, berr := other.Current(ctx)
				So(aerr, ShouldBeNil)
				So(berr, ShouldBeNil)
				So(len(ra), ShouldBeGreaterThan, 0)
				So(rb, ShouldResemble, ra)
			})
		})

		Convey("When an injury rate is configured", func() {
			report, err := store.Current(ctx)

			Convey("Then a sample of players carries a designation", func() {
				So(err, ShouldBeNil)
				So(len(report), ShouldBeGreaterThan, 0)
				So(len(report), ShouldBeLessThan, 8*7)
			})
		})
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
