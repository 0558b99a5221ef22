package models

import "time"

type WatchlistEntry struct {
	UserID     int64     `json:"user_id"`
	MovieID    int       `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	AddedAt    time.Time `json:"added_at"`
}
