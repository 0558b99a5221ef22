package models

import "time"

// Review is a free-text post attached to a movie. Comments share the same
// shape and live in their own table; both are append-only.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
