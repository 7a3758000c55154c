package engine

import "errors"

// Error kinds returned by the search controller. Inside alpha-beta no
// errors propagate: positions always resolve to a numeric score or
// MATE; these sentinels only surface at the controller boundary.
var (
	// ErrInvalidPosition covers bad board dimensions, an illegal side to
	// move, or a position that is already won.
	ErrInvalidPosition = errors.New("engine: invalid position")

	// ErrNoLegalMove means the board is full.
	ErrNoLegalMove = errors.New("engine: no legal move")

	// ErrCancelled means the search ended, by cancellation or by the time
	// bounds, before any worker completed an iteration. No move is
	// returned alongside it: the SearchResult is the zero value.
	ErrCancelled = errors.New("engine: search cancelled")

	// ErrTimeout is not returned by the controller: a search that ends
	// without a move at any depth reports ErrCancelled instead.
	ErrTimeout = errors.New("engine: search timed out")
)
