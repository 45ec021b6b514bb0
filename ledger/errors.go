package ledger

import "errors"

// Error kinds surfaced by ledger operations. Controllers map these onto HTTP
// statuses; duplicate/idempotent conditions are reported through result
// values, never through errors.
var (
	// ErrNotFound means a referenced course, user or purchase does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotEnrolled means the operation requires an enrollment the user
	// does not hold.
	ErrNotEnrolled = errors.New("user not enrolled in course")

	// ErrInvalidRating means the rating is outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrUpstream means the identity provider or payment gateway could not
	// be reached. Callers should ask the client to retry.
	ErrUpstream = errors.New("upstream service unavailable")
)
