// Package domain defines the core business entities for moviematch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MovieEntry: A catalog movie with its normalized title and genres
//   - RatingEvent: One row of the user-rating corpus
//   - FeedbackRecord: A star rating attached to a search event
//   - SessionRatingState: Per-session scratch state used to detect changes
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
