// Package modelbank trains one regularized linear model per position and
// serves predictions from an atomically swapped model set, so retraining
// never blocks in-flight predictions or hands them a half-trained model.
package modelbank

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/pkg/metrics"
)

// dstPointCap bounds DST predictions; defensive scores beyond this are noise.
const dstPointCap = 30.0

// Defaults for the training configuration.
const (
	defaultLambda  = 1.0
	defaultMinRows = 50
)

// Sample is one training row: a feature vector and the fantasy points the
// player actually scored that week.
type Sample struct {
	Features []float64
	Target   float64
}

// Model is one position's trained regression with its fitted scaler.
type Model struct {
	Position  stats.Position
	TrainedAt time.Time
	Rows      int
	MAE       float64

	scaler  scaler
	weights []float64
}

// FeatureCount is the vector length this model accepts.
func (m *Model) FeatureCount() int { return m.scaler.featureCount() }

// Predict scores one feature vector. Results are floored at zero; DST results
// are additionally capped.
func (m *Model) Predict(vector []float64) (float64, error) {
	scaled, err := m.scaler.transform(vector)
	if err != nil {
		metrics.RecordFeatureMismatch()
		return 0, err
	}
	pred := m.weights[0]
	for i, v := range scaled {
		pred += m.weights[i+1] * v
	}
	if pred < 0 {
		pred = 0
	}
	if m.Position == stats.DST && pred > dstPointCap {
		pred = dstPointCap
	}
	return pred, nil
}

// Set is an immutable collection of trained models, one per position that had
// enough data.
type Set struct {
	TrainedAt time.Time
	models    map[stats.Position]*Model
}

// Model returns the trained model for a position, if any.
func (s *Set) Model(pos stats.Position) (*Model, bool) {
	if s == nil {
		return nil, false
	}
	m, ok := s.models[pos]
	return m, ok
}

// Positions lists the positions with a usable model.
func (s *Set) Positions() []stats.Position {
	if s == nil {
		return nil
	}
	out := make([]stats.Position, 0, len(s.models))
	for _, pos := range append(stats.OffensivePositions, stats.DST) {
		if _, ok := s.models[pos]; ok {
			out = append(out, pos)
		}
	}
	return out
}

// Option applies a configuration option to the Bank.
type Option func(*Bank)

// WithLambda sets the L2 regularization strength.
func WithLambda(lambda float64) Option {
	return func(b *Bank) {
		if lambda >= 0 {
			b.lambda = lambda
		}
	}
}

// WithMinRows sets the training-row floor below which a position's training
// fails.
func WithMinRows(n int) Option {
	return func(b *Bank) {
		if n > 0 {
			b.minRows = n
		}
	}
}

// Bank holds the live model set. Predictions read the current set through an
// atomic pointer; Publish swaps in a new set wholesale.
type Bank struct {
	current atomic.Pointer[Set]
	lambda  float64
	minRows int
}

// New creates an empty Bank.
func New(opts ...Option) *Bank {
	b := &Bank{
		lambda:  defaultLambda,
		minRows: defaultMinRows,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Train fits one position's model from samples. Failure is scoped to the
// position; other models stay usable.
func (b *Bank) Train(pos stats.Position, samples []Sample) (*Model, error) {
	started := time.Now()
	if len(samples) < b.minRows {
		return nil, fmt.Errorf("%w: position %s has %d rows, need %d", ErrInsufficientTraining, pos, len(samples), b.minRows)
	}
	width := len(samples[0].Features)
	rows := make([][]float64, len(samples))
	targets := make([]float64, len(samples))
	for i, s := range samples {
		if len(s.Features) != width {
			return nil, fmt.Errorf("%w: training row %d has %d features, expected %d", ErrFeatureMismatch, i, len(s.Features), width)
		}
		rows[i] = s.Features
		targets[i] = s.Target
	}

	sc := fitScaler(rows)
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		v, err := sc.transform(row)
		if err != nil {
			return nil, err
		}
		scaled[i] = v
	}
	weights, err := ridge(scaled, targets, b.lambda)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", pos, err)
	}

	model := &Model{
		Position:  pos,
		TrainedAt: time.Now(),
		Rows:      len(samples),
		scaler:    sc,
		weights:   weights,
	}
	model.MAE = trainingMAE(model, rows, targets)
	metrics.RecordModelTrained(string(pos), time.Since(started), model.MAE)
	return model, nil
}

// TrainAll fits every position that has samples and returns the new set plus
// per-position failures. The set is NOT published; callers decide when to
// swap it in.
func (b *Bank) TrainAll(samples map[stats.Position][]Sample) (*Set, map[stats.Position]error) {
	set := &Set{
		TrainedAt: time.Now(),
		models:    make(map[stats.Position]*Model, len(samples)),
	}
	failures := make(map[stats.Position]error)
	for pos, rows := range samples {
		model, err := b.Train(pos, rows)
		if err != nil {
			failures[pos] = err
			continue
		}
		set.models[pos] = model
	}
	return set, failures
}

// Publish atomically swaps the live model set.
func (b *Bank) Publish(set *Set) {
	b.current.Store(set)
}

// Current returns the live model set, which may be nil before first publish.
func (b *Bank) Current() *Set {
	return b.current.Load()
}

// Predict scores a vector with the live model for pos.
func (b *Bank) Predict(pos stats.Position, vector []float64) (float64, error) {
	model, ok := b.Current().Model(pos)
	if !ok {
		return 0, fmt.Errorf("%w: position %s", ErrModelUnavailable, pos)
	}
	return model.Predict(vector)
}

func trainingMAE(m *Model, rows [][]float64, targets []float64) float64 {
	var sum float64
	for i, row := range rows {
		pred, err := m.Predict(row)
		if err != nil {
			continue
		}
		sum += math.Abs(pred - targets[i])
	}
	return sum / float64(len(rows))
}
