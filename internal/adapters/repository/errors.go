// Package repository provides the stat store implementations behind the
// engine's repository interfaces.
package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("not found")
	ErrClosed   = errors.New("store closed")
)
