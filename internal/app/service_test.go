package app

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Eda2353/nfl/internal/adapters/repository"
	"github.com/Eda2353/nfl/internal/domain/lineup"
	"github.com/Eda2353/nfl/internal/domain/scoring"
	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/internal/gen"
	"github.com/Eda2353/nfl/pkg/logger"
)

func init() {
	logger.Init()
}

func TestTrainingSeasons(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := New(repository.NewMemory())

		Convey("When the current season is deep enough", func() {
			seasons := svc.trainingSeasons(2024, 10)

			Convey("Then it joins the three prior seasons", func() {
				So(seasons, ShouldResemble, []int{2021, 2022, 2023, 2024})
			})
		})

		Convey("When the current season is too young", func() {
			seasons := svc.trainingSeasons(2024, 5)

			Convey("Then only prior seasons contribute", func() {
				So(seasons, ShouldResemble, []int{2021, 2022, 2023})
			})
		})
	})
}

func TestServiceOptions(t *testing.T) {
	Convey("Given a service built without options", t, func() {
		svc := New(repository.NewMemory())

		Convey("Then it scores under the default system", func() {
			So(svc.rules, ShouldResemble, scoring.Default())
			So(svc.rules.Name, ShouldEqual, "FanDuel")
		})
	})

	Convey("Given service options", t, func() {
		rules, err := scoring.System("PPR")
		So(err, ShouldBeNil)

		svc := New(repository.NewMemory(),
			WithScoringRules(rules),
			WithWorkerCount(2),
			WithDefenseBoostCap(0.3),
			WithSlots(lineup.SlotConfig{stats.QB: 1}),
		)

		Convey("Then they land on the service", func() {
			So(svc.rules.Name, ShouldEqual, "PPR")
			So(svc.workerCount, ShouldEqual, 2)
			So(svc.boostCap, ShouldEqual, 0.3)
			So(svc.slots, ShouldResemble, lineup.SlotConfig{stats.QB: 1})
		})
	})
}

func TestGamedayWithoutModels(t *testing.T) {
	ctx := context.Background()

	Convey("Given a populated store but no trained models", t, func() {
		store := repository.NewMemory()
		gen.Populate(store, gen.Config{
			Seasons: []int{2023, 2024}, Weeks: 6, Teams: gen.DefaultTeams()[:4], Seed: 3,
		})
		svc := New(store, WithWorkerCount(2))

		Convey("When running gameday", func() {
			result, err := svc.Gameday(ctx, 2024, 6)

			Convey("Then the request degrades instead of failing", func() {
				So(err, ShouldBeNil)
				So(result.Rankings, ShouldBeEmpty)
				So(result.Diagnostics.UnavailablePositions, ShouldNotBeEmpty)
				So(result.Lineup.Unfilled, ShouldNotBeEmpty)
			})
		})
	})
}
