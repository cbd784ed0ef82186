package domain

import (
	"math"
	"strings"
)

// genreSeparator delimits genres in the catalog file.
const genreSeparator = "|"

// noGenres is the catalog placeholder for movies without genres.
const noGenres = "(no genres listed)"

// MovieEntry represents a movie in the catalog.
// Entries are immutable once the catalog has been built.
type MovieEntry struct {
	// ID is the catalog movie identifier. Unique within a catalog.
	ID int `json:"id"`

	// Title is the display title, usually with the release year appended.
	// Example: "Toy Story (1995)"
	Title string `json:"title"`

	// NormalizedTitle is Title with every character that is not an ASCII
	// letter, digit or space removed.
	NormalizedTitle string `json:"normalized_title"`

	// Genres is the ordered list of genre names.
	Genres []string `json:"genres"`
}

// GenreString joins the genres with the catalog separator.
func (m *MovieEntry) GenreString() string {
	return strings.Join(m.Genres, genreSeparator)
}

// ParseGenres splits a pipe-delimited genre field.
// The "(no genres listed)" placeholder and empty fields yield nil.
func ParseGenres(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" || field == noGenres {
		return nil
	}

	parts := strings.Split(field, genreSeparator)
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// RatingEvent is one row of the external rating corpus.
type RatingEvent struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
}

// ScoredMovie is a catalog entry with the score a strategy assigned to it.
type ScoredMovie struct {
	// Movie is the matched catalog entry.
	Movie MovieEntry `json:"movie"`

	// Score is the cosine similarity (content) or lift (collaborative).
	Score float64 `json:"score"`
}

// JSONScore returns the score for encoding. An infinite lift, which JSON
// cannot represent, yields nil.
func (s ScoredMovie) JSONScore() *float64 {
	if math.IsInf(s.Score, 0) || math.IsNaN(s.Score) {
		return nil
	}
	score := s.Score
	return &score
}

// ResultRow is the uniform title/genres projection shown to users.
type ResultRow struct {
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}

// String formats the row as "title - genres".
func (r ResultRow) String() string {
	if len(r.Genres) == 0 {
		return r.Title
	}
	return r.Title + " - " + strings.Join(r.Genres, genreSeparator)
}

// RowsFromScored strips scores from a ranked list.
func RowsFromScored(scored []ScoredMovie) []ResultRow {
	rows := make([]ResultRow, len(scored))
	for i := range scored {
		rows[i] = ResultRow{
			Title:  scored[i].Movie.Title,
			Genres: scored[i].Movie.Genres,
		}
	}
	return rows
}
