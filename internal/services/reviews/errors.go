package reviews

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	// ErrReviewNotFound is returned both for an absent review and for one
	// authored by a different user.
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidScore   = errors.New("score must be between 0 and 5")
)
