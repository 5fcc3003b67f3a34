package movies

import "errors"

var (
	ErrMovieNotFound       = errors.New("movie not found")
	ErrInvalidRating       = errors.New("rating must be between 0 and 5")
	ErrUpstreamUnavailable = errors.New("movie metadata service unavailable")
)
