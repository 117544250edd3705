package modelbank

import "errors"

var (
	// ErrInsufficientTraining is returned when a position has too few
	// training rows. It is fatal for that position only.
	ErrInsufficientTraining = errors.New("insufficient training data")

	// ErrModelUnavailable is returned when predicting for a position with
	// no trained model in the current set.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrFeatureMismatch is returned when an incoming vector's length does
	// not match the trained scaler. Never padded or truncated.
	ErrFeatureMismatch = errors.New("feature count mismatch")

	// ErrDegenerateSystem is returned when the normal equations cannot be
	// solved, e.g. every training row is identical.
	ErrDegenerateSystem = errors.New("degenerate linear system")
)
