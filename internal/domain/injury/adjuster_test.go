package injury

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Eda2353/nfl/internal/domain/stats"
)

func TestAdjustPlayer(t *testing.T) {
	Convey("Given a questionable player projected for 20 points", t, func() {
		rec := &stats.InjuryRecord{PlayerID: "p1", Status: stats.StatusQuestionable}

		Convey("When adjusting", func() {
			adjusted, impact := AdjustPlayer(20.0, rec)

			Convey("Then the 0.3 impact yields 14.0", func() {
				So(impact, ShouldAlmostEqual, 0.3)
				So(adjusted, ShouldAlmostEqual, 14.0)
			})

			Convey("Then reapplying from the raw value is idempotent", func() {
				again, _ := AdjustPlayer(20.0, rec)
				So(again, ShouldAlmostEqual, adjusted)
			})
		})
	})

	Convey("Given each availability status", t, func() {
		cases := map[stats.InjuryStatus]float64{
			stats.StatusOut:          1.0,
			stats.StatusDoubtful:     0.8,
			stats.StatusQuestionable: 0.3,
			stats.StatusActive:       0.0,
		}
		for status, want := range cases {
			Convey("When the status is "+string(status), func() {
				adjusted, impact := AdjustPlayer(10.0, &stats.InjuryRecord{Status: status})

				Convey("Then the impact matches the status table", func() {
					So(impact, ShouldAlmostEqual, want)
					So(adjusted, ShouldAlmostEqual, 10.0*(1-want))
				})
			})
		}
	})

	Convey("Given an explicit severity on the report", t, func() {
		rec := &stats.InjuryRecord{Status: stats.StatusQuestionable, Severity: 0.6, SeverityKnown: true}

		Convey("When adjusting", func() {
			_, impact := AdjustPlayer(10.0, rec)

			Convey("Then severity overrides the status default", func() {
				So(impact, ShouldAlmostEqual, 0.6)
			})
		})
	})

	Convey("Given a healthy player with no report entry", t, func() {
		adjusted, impact := AdjustPlayer(12.5, nil)

		Convey("Then the prediction passes through untouched", func() {
			So(impact, ShouldEqual, 0)
			So(adjusted, ShouldEqual, 12.5)
		})
	})
}

func TestAdjustDefense(t *testing.T) {
	Convey("Given a DST projected for 8.0 points", t, func() {
		Convey("When the opposing starting QB is out", func() {
			adjusted, boost := AdjustDefense(8.0, []stats.InjuryRecord{
				{Position: "QB", Status: stats.StatusOut, Starter: true},
			}, DefaultBoostCap)

			Convey("Then the boost is +0.15 and the score 9.2", func() {
				So(boost, ShouldAlmostEqual, 0.15)
				So(adjusted, ShouldAlmostEqual, 9.2)
			})
		})

		Convey("When the opposing backup QB is out", func() {
			_, boost := AdjustDefense(8.0, []stats.InjuryRecord{
				{Position: "QB", Status: stats.StatusOut, Starter: false},
			}, DefaultBoostCap)

			Convey("Then nothing moves", func() {
				So(boost, ShouldEqual, 0)
			})
		})

		Convey("When the opposing QB is merely questionable", func() {
			_, boost := AdjustDefense(8.0, []stats.InjuryRecord{
				{Position: "QB", Status: stats.StatusQuestionable, Starter: true},
			}, DefaultBoostCap)

			Convey("Then the smaller increment applies", func() {
				So(boost, ShouldAlmostEqual, 0.05)
			})
		})

		Convey("When linemen and skill players stack", func() {
			_, boost := AdjustDefense(8.0, []stats.InjuryRecord{
				{Position: "QB", Status: stats.StatusOut, Starter: true},
				{Position: "LT", Status: stats.StatusOut},
				{Position: "C", Status: stats.StatusOut},
				{Position: "WR", Status: stats.StatusOut, Starter: true},
			}, DefaultBoostCap)

			Convey("Then increments accumulate additively", func() {
				So(boost, ShouldAlmostEqual, 0.15+0.03+0.03+0.02)
			})
		})

		Convey("When an absurd number of injuries stack", func() {
			var report []stats.InjuryRecord
			for i := 0; i < 30; i++ {
				report = append(report, stats.InjuryRecord{Position: "G", Status: stats.StatusOut})
			}
			adjusted, boost := AdjustDefense(8.0, report, DefaultBoostCap)

			Convey("Then the cap bounds the boost", func() {
				So(boost, ShouldAlmostEqual, DefaultBoostCap)
				So(adjusted, ShouldAlmostEqual, 12.0)
			})
		})

		Convey("When the opposing offense is healthy", func() {
			adjusted, boost := AdjustDefense(8.0, nil, DefaultBoostCap)

			Convey("Then the raw prediction passes through", func() {
				So(boost, ShouldEqual, 0)
				So(adjusted, ShouldEqual, 8.0)
			})
		})
	})
}
