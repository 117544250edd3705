// Package lineup selects the optimal starting lineup from adjusted
// predictions. Slots are independent and there is no salary constraint, so a
// per-position greedy pick of the top N is exactly optimal.
package lineup

import (
	"fmt"
	"sort"

	"github.com/Eda2353/nfl/internal/domain/stats"
	"github.com/Eda2353/nfl/pkg/metrics"
)

// SlotConfig maps each position to the number of starters it fills.
type SlotConfig map[stats.Position]int

// Validate rejects empty configs, negative counts, and unknown positions.
func (c SlotConfig) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no slots", ErrInvalidSlotConfig)
	}
	total := 0
	for pos, n := range c {
		if !pos.Valid() {
			return fmt.Errorf("%w: unknown position %q", ErrInvalidSlotConfig, pos)
		}
		if n < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrInvalidSlotConfig, pos)
		}
		total += n
	}
	if total == 0 {
		return fmt.Errorf("%w: zero total slots", ErrInvalidSlotConfig)
	}
	return nil
}

// Prediction is one player's (or DST's) fully adjusted projection, ready for
// lineup selection.
type Prediction struct {
	PlayerID string
	Name     string
	Team     string
	Opponent string
	Position stats.Position

	Raw      float64
	Adjusted float64
	// Impact is the player-side injury discount applied to Raw.
	Impact float64
	// Boost is the DST-side injury boost, zero for offensive players.
	Boost  float64
	Status stats.InjuryStatus
}

// Unfilled records a slot the pool could not cover.
type Unfilled struct {
	Position stats.Position
	Reason   string
}

// Lineup is the selected starters plus the spots that could not be filled.
type Lineup struct {
	Starters []Prediction
	Total    float64
	Unfilled []Unfilled
}

// Build groups predictions by position, orders each group deterministically,
// and takes the top N per slot count. Out players are excluded from the pool
// entirely, not down-weighted.
func Build(predictions []Prediction, slots SlotConfig) (Lineup, error) {
	if err := slots.Validate(); err != nil {
		return Lineup{}, err
	}

	groups := make(map[stats.Position][]Prediction)
	seen := make(map[string]bool)
	for _, p := range predictions {
		if p.Status == stats.StatusOut {
			continue
		}
		if p.PlayerID == "" || seen[p.PlayerID] {
			continue
		}
		seen[p.PlayerID] = true
		groups[p.Position] = append(groups[p.Position], p)
	}
	for _, group := range groups {
		sortGroup(group)
	}

	var built Lineup
	for _, pos := range append(stats.OffensivePositions, stats.DST) {
		want := slots[pos]
		if want == 0 {
			continue
		}
		group := groups[pos]
		for i := 0; i < want; i++ {
			if i >= len(group) {
				built.Unfilled = append(built.Unfilled, Unfilled{
					Position: pos,
					Reason:   fmt.Sprintf("only %d eligible of %d needed", len(group), want),
				})
				continue
			}
			built.Starters = append(built.Starters, group[i])
			built.Total += group[i].Adjusted
		}
	}

	unfilled := make([]string, 0, len(built.Unfilled))
	for _, u := range built.Unfilled {
		unfilled = append(unfilled, string(u.Position))
	}
	metrics.RecordLineupBuilt(unfilled)
	return built, nil
}

// Rank orders a full prediction pool for display, using the same deterministic
// ordering as slot selection.
func Rank(predictions []Prediction) []Prediction {
	out := make([]Prediction, len(predictions))
	copy(out, predictions)
	sortGroup(out)
	return out
}

// sortGroup orders by adjusted points descending, breaking ties by lower
// injury impact, then by player ID.
func sortGroup(group []Prediction) {
	sort.Slice(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if a.Adjusted != b.Adjusted {
			return a.Adjusted > b.Adjusted
		}
		if a.Impact != b.Impact {
			return a.Impact < b.Impact
		}
		return a.PlayerID < b.PlayerID
	})
}
