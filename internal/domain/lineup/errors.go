package lineup

import "errors"

var (
	// ErrInvalidSlotConfig is returned for an empty slot configuration, a
	// negative count, or an unknown position.
	ErrInvalidSlotConfig = errors.New("invalid slot config")
)
