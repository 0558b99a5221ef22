package models

import "time"

type Rating struct {
	UserID  int64     `json:"user_id"`
	MovieID int       `json:"movie_id"`
	Rating  int       `json:"rating"`
	RatedAt time.Time `json:"rated_at"`
}

// RatingSummary is the aggregate for one movie. Callers receive a nil
// summary when the movie has no ratings at all, so an unrated movie is
// never rendered as "0.0 stars".
type RatingSummary struct {
	MovieID int     `json:"movie_id"`
	Average float64 `json:"average"` // rounded to 1 decimal
	Count   int     `json:"count"`
}
