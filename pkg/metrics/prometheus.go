// Package metrics provides Prometheus metrics for the prediction engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nfl"

var (
	predictionsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_computed_total",
		Help:      "Player predictions produced, by position.",
	}, []string{"position"})

	predictionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_skipped_total",
		Help:      "Players excluded from a prediction request, by reason.",
	}, []string{"reason"})

	modelTrainDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_train_duration_seconds",
		Help:      "Wall time spent training a position model.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"position"})

	modelTrainingMAE = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_training_mae_points",
		Help:      "Mean absolute error of the most recent training run.",
	}, []string{"position"})

	featureMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feature_mismatches_total",
		Help:      "Prediction vectors rejected for a wrong feature count.",
	})

	strengthNeutralSnapshots = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strength_neutral_snapshots_total",
		Help:      "Strength snapshots that fell back to the neutral score.",
	})

	injuryAdjustments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "injury_adjustments_total",
		Help:      "Predictions reduced or boosted by injury status.",
	})

	lineupBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lineup_builds_total",
		Help:      "Lineups constructed.",
	})

	lineupUnfilledSlots = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lineup_unfilled_slots_total",
		Help:      "Lineup slots left unfilled, by position.",
	}, []string{"position"})

	gamedayDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gameday_request_duration_seconds",
		Help:      "End-to-end duration of a gameday prediction request.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)

// RecordPrediction counts one produced prediction for a position.
func RecordPrediction(position string) {
	predictionsComputed.WithLabelValues(position).Inc()
}

// RecordPredictionSkipped counts a player excluded for the given reason.
func RecordPredictionSkipped(reason string) {
	predictionsSkipped.WithLabelValues(reason).Inc()
}

// RecordModelTrained records a completed training run for a position.
func RecordModelTrained(position string, d time.Duration, mae float64) {
	modelTrainDuration.WithLabelValues(position).Observe(d.Seconds())
	modelTrainingMAE.WithLabelValues(position).Set(mae)
}

// RecordFeatureMismatch counts a rejected prediction vector.
func RecordFeatureMismatch() {
	featureMismatches.Inc()
}

// RecordNeutralSnapshot counts a strength snapshot that used the neutral fallback.
func RecordNeutralSnapshot() {
	strengthNeutralSnapshots.Inc()
}

// RecordInjuryAdjustment counts an applied injury adjustment.
func RecordInjuryAdjustment() {
	injuryAdjustments.Inc()
}

// RecordLineupBuilt counts a constructed lineup and its unfilled slots.
func RecordLineupBuilt(unfilled []string) {
	lineupBuilds.Inc()
	for _, pos := range unfilled {
		lineupUnfilledSlots.WithLabelValues(pos).Inc()
	}
}

// ObserveGamedayDuration records the duration of a full prediction request.
func ObserveGamedayDuration(d time.Duration) {
	gamedayDuration.Observe(d.Seconds())
}
