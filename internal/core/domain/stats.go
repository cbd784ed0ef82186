package domain

// RatingSummary is the five-number summary plus mean of a set of ratings.
type RatingSummary struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// MethodStats aggregates the feedback recorded for one method.
type MethodStats struct {
	Method Method `json:"method"`
	Count  int    `json:"count"`

	// Histogram counts ratings; index 0 holds rating 1.
	Histogram [MaxRating]int `json:"histogram"`

	Summary RatingSummary `json:"summary"`
}

// QueryStats is the mean rating a query received under one method.
type QueryStats struct {
	Query  string  `json:"query"`
	Method Method  `json:"method"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
}

// FeedbackStats is the dashboard view over the feedback log.
type FeedbackStats struct {
	Total   int           `json:"total"`
	Methods []MethodStats `json:"methods"`
	Queries []QueryStats  `json:"queries"`
}
