package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUnknownSystem = errors.New("unknown scoring system")
)
