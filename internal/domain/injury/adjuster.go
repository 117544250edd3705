// Package injury converts injury report entries into deterministic prediction
// adjustments. Every function here is pure: callers always pass the raw
// prediction, so reapplying the same report twice cannot compound.
package injury

import (
	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/pkg/metrics"
)

// DefaultBoostCap bounds the additive defensive boost from stacked opposing
// injuries.
const DefaultBoostCap = 0.5

// Defensive boost increments per opposing injury.
const (
	boostQBOut          = 0.15
	boostQBQuestionable = 0.05
	boostLineman        = 0.03
	boostKeySkill       = 0.02
)

// Impact maps an injury record to a point reduction factor in [0,1]. An
// explicit known severity overrides the status-derived default.
func Impact(rec stats.InjuryRecord) float64 {
	if rec.SeverityKnown {
		return clamp01(rec.Severity)
	}
	switch rec.Status {
	case stats.StatusOut:
		return 1.0
	case stats.StatusDoubtful:
		return 0.8
	case stats.StatusQuestionable:
		return 0.3
	default:
		return 0.0
	}
}

// AdjustPlayer discounts a raw prediction by the record's impact. A nil
// record means healthy.
func AdjustPlayer(raw float64, rec *stats.InjuryRecord) (adjusted, impact float64) {
	if rec == nil {
		return raw, 0
	}
	impact = Impact(*rec)
	if impact > 0 {
		metrics.RecordInjuryAdjustment()
	}
	return raw * (1 - impact), impact
}

// AdjustDefense boosts a raw DST prediction for injuries on the opposing
// offense. The boost accumulates additively and is clamped to cap.
func AdjustDefense(raw float64, opponentInjuries []stats.InjuryRecord, cap float64) (adjusted, boost float64) {
	if cap <= 0 {
		cap = DefaultBoostCap
	}
	for _, rec := range opponentInjuries {
		boost += defenseBoost(rec)
	}
	if boost > cap {
		boost = cap
	}
	if boost > 0 {
		metrics.RecordInjuryAdjustment()
	}
	return raw * (1 + boost), boost
}

func defenseBoost(rec stats.InjuryRecord) float64 {
	switch {
	case rec.Position == string(stats.QB):
		if !rec.Starter {
			return 0
		}
		switch rec.Status {
		case stats.StatusOut:
			return boostQBOut
		case stats.StatusQuestionable, stats.StatusDoubtful:
			return boostQBQuestionable
		}
		return 0
	case isLineman(rec.Position):
		if rec.Status == stats.StatusOut {
			return boostLineman
		}
		return 0
	case isKeySkill(rec.Position):
		if rec.Starter && rec.Status == stats.StatusOut {
			return boostKeySkill
		}
		return 0
	}
	return 0
}

func isLineman(pos string) bool {
	switch pos {
	case "C", "G", "T", "OL", "OT", "OG", "LT", "RT", "LG", "RG":
		return true
	}
	return false
}

func isKeySkill(pos string) bool {
	switch stats.Position(pos) {
	case stats.RB, stats.WR, stats.TE:
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
