package matchup

import "errors"

var (
	// ErrUnsupportedPosition is returned when a feature bundle is requested
	// for a position the analyzer has no variant for.
	ErrUnsupportedPosition = errors.New("unsupported position")
)
