package features

import "errors"

var (
	// ErrFeatureUnavailable is returned when a player has no historical
	// games before the target week; callers exclude the player rather than
	// fabricating a default vector.
	ErrFeatureUnavailable = errors.New("features unavailable")

	// ErrNoMatchup is returned when the player's team has no scheduled game
	// in the target week (bye week or unknown schedule).
	ErrNoMatchup = errors.New("no scheduled matchup")
)
