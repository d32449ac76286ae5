package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidStyleName indicates the style name contains invalid
	// characters such as path separators or dots.
	ErrInvalidStyleName = errors.New("invalid style name")
)
