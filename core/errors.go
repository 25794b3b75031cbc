package core

import "errors"

// Every failure the core reports wraps one of these sentinels, so callers
// can branch with errors.Is while still seeing the offending value in the
// message. The core never retries and never falls back on its own; the
// calling layer decides what a failure means.
var (
	// ErrInvalidArgument covers bad dot counts, radii, raster dimensions,
	// thresholds and out-of-range coordinates.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyIndex is returned by nearest-dot queries when filtering left
	// no dots to search.
	ErrEmptyIndex = errors.New("empty point index")

	// ErrIndexOutOfRange is returned by state accessors given a dot index
	// at or beyond the retained count.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUninitialized is returned by state operations before Initialize
	// has allocated records.
	ErrUninitialized = errors.New("state store not initialized")
)
