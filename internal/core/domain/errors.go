package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrDataLoad indicates the catalog or rating corpus is missing,
	// unreadable or empty. It is fatal at startup.
	ErrDataLoad = errors.New("data load failed")

	// ErrNotFound indicates a collaborative query matched no catalog title.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientData indicates the anchor movie has no enthusiast ratings.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMalformedInput indicates the feedback log exists but has the wrong schema.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// IsNoResults reports whether err is a per-query failure that callers
// should present as an empty result rather than an error.
func IsNoResults(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInsufficientData)
}

// IsDataLoad reports whether err is a startup data-load failure.
func IsDataLoad(err error) bool {
	return errors.Is(err, ErrDataLoad)
}
