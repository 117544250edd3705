package modelbank

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Eda2353/nfl/internal/domain/features"
	"github.com/Eda2353/nfl/internal/domain/stats"
)

// linearSamples generates rows from a known linear relationship with mild
// noise so the fit is recoverable.
func linearSamples(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Sample, n)
	for i := range out {
		v := make([]float64, features.VectorSize)
		for j := range v {
			v[j] = rng.Float64() * 20
		}
		target := 5 + 0.8*v[0] + 0.4*v[1] - 0.2*v[5] + rng.NormFloat64()*0.5
		if target < 0 {
			target = 0
		}
		out[i] = Sample{Features: v, Target: target}
	}
	return out
}

func TestTrain(t *testing.T) {
	Convey("Given enough training rows with a linear signal", t, func() {
		bank := New()
		samples := linearSamples(200, 1)

		Convey("When training the WR model", func() {
			model, err := bank.Train(stats.WR, samples)

			Convey("Then it fits with a small training error", func() {
				So(err, ShouldBeNil)
				So(model.Rows, ShouldEqual, 200)
				So(model.FeatureCount(), ShouldEqual, features.VectorSize)
				So(model.MAE, ShouldBeLessThan, 1.5)
			})

			Convey("Then predictions track the underlying relationship", func() {
				So(err, ShouldBeNil)
				v := make([]float64, features.VectorSize)
				for j := range v {
					v[j] = 10
				}
				want := 5 + 0.8*10 + 0.4*10 - 0.2*10
				got, perr := model.Predict(v)
				So(perr, ShouldBeNil)
				So(got, ShouldAlmostEqual, want, 1.5)
			})
		})
	})

	Convey("Given too few rows", t, func() {
		bank := New()

		Convey("When training", func() {
			_, err := bank.Train(stats.QB, linearSamples(10, 2))

			Convey("Then the failure is the insufficient-training condition", func() {
				So(errors.Is(err, ErrInsufficientTraining), ShouldBeTrue)
			})
		})

		Convey("When the row floor is lowered", func() {
			bank := New(WithMinRows(10))
			_, err := bank.Train(stats.QB, linearSamples(10, 2))

			Convey("Then the same data trains", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given training rows of inconsistent width", t, func() {
		bank := New(WithMinRows(2))
		samples := []Sample{
			{Features: []float64{1, 2, 3}, Target: 5},
			{Features: []float64{1, 2}, Target: 6},
		}

		Convey("When training", func() {
			_, err := bank.Train(stats.RB, samples)

			Convey("Then the mismatch is a hard error", func() {
				So(errors.Is(err, ErrFeatureMismatch), ShouldBeTrue)
			})
		})
	})
}

func TestPredict(t *testing.T) {
	Convey("Given a published model set", t, func() {
		bank := New()
		set, failures := bank.TrainAll(map[stats.Position][]Sample{
			stats.WR: linearSamples(120, 3),
		})
		So(failures, ShouldBeEmpty)
		bank.Publish(set)

		Convey("When predicting with a wrong-length vector", func() {
			_, err := bank.Predict(stats.WR, make([]float64, features.VectorSize-1))

			Convey("Then it is rejected, never padded", func() {
				So(errors.Is(err, ErrFeatureMismatch), ShouldBeTrue)
			})
		})

		Convey("When predicting for an untrained position", func() {
			_, err := bank.Predict(stats.TE, make([]float64, features.VectorSize))

			Convey("Then only that position is unavailable", func() {
				So(errors.Is(err, ErrModelUnavailable), ShouldBeTrue)

				_, werr := bank.Predict(stats.WR, make([]float64, features.VectorSize))
				So(werr, ShouldBeNil)
			})
		})

		Convey("When a vector would score negative", func() {
			model, _ := set.Model(stats.WR)
			v := make([]float64, features.VectorSize)
			for j := range v {
				v[j] = -500
			}
			got, err := model.Predict(v)

			Convey("Then the prediction floors at zero", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a DST model trained on inflated targets", t, func() {
		bank := New(WithMinRows(10))
		samples := linearSamples(60, 4)
		for i := range samples {
			samples[i].Target *= 10
		}
		model, err := bank.Train(stats.DST, samples)
		So(err, ShouldBeNil)

		Convey("When predicting an extreme vector", func() {
			v := make([]float64, features.VectorSize)
			for j := range v {
				v[j] = 100
			}
			got, perr := model.Predict(v)

			Convey("Then the DST cap bounds the output", func() {
				So(perr, ShouldBeNil)
				So(got, ShouldBeLessThanOrEqualTo, 30.0)
			})
		})
	})

	Convey("Given no published set", t, func() {
		bank := New()

		Convey("When predicting", func() {
			_, err := bank.Predict(stats.QB, make([]float64, features.VectorSize))

			Convey("Then the model is unavailable", func() {
				So(errors.Is(err, ErrModelUnavailable), ShouldBeTrue)
			})
		})
	})
}

func TestPublishIsAtomic(t *testing.T) {
	Convey("Given concurrent predictions during a retrain", t, func() {
		bank := New(WithMinRows(10))
		first, failures := bank.TrainAll(map[stats.Position][]Sample{
			stats.WR: linearSamples(60, 5),
		})
		So(failures, ShouldBeEmpty)
		bank.Publish(first)

		Convey("When readers race a publish", func() {
			var wg sync.WaitGroup
			errs := make(chan error, 200)
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					v := make([]float64, features.VectorSize)
					for k := 0; k < 50; k++ {
						if _, err := bank.Predict(stats.WR, v); err != nil {
							errs <- err
						}
					}
				}()
			}
			second, _ := bank.TrainAll(map[stats.Position][]Sample{
				stats.WR: linearSamples(80, 6),
			})
			bank.Publish(second)
			wg.Wait()
			close(errs)

			Convey("Then every reader saw a complete model set", func() {
				So(len(errs), ShouldEqual, 0)
				So(bank.Current(), ShouldEqual, second)
			})
		})
	})
}
