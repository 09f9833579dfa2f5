package league

import "errors"

// Sentinel errors shared across the league workflows and mapped to HTTP
// status codes at the transport layer.
var (
	// ErrValidation marks bad input rejected before any storage access.
	ErrValidation = errors.New("validation failed")

	// ErrSiteNotFound and ErrPlayerNotFound mark references to records
	// that do not exist. Rejected after a single read, before any write.
	ErrSiteNotFound   = errors.New("site not found")
	ErrPlayerNotFound = errors.New("player not found")

	// ErrRatingConflict is returned when a player's rating keeps moving
	// under a concurrent recording and the bounded compare-and-swap
	// retries are exhausted.
	ErrRatingConflict = errors.New("rating update conflict")

	// ErrForbidden marks an operation the caller is not allowed to
	// perform.
	ErrForbidden = errors.New("forbidden")
)
