package live

import "time"

const (
	EventWatchlistAdd    = "watchlist.add"
	EventWatchlistRemove = "watchlist.remove"
	EventRatingSet       = "rating.set"
	EventReviewNew       = "review.new"
	EventCommentNew      = "comment.new"
)

type Event struct {
	Type    string    `json:"type"`
	UserID  int64     `json:"user_id"`
	MovieID int       `json:"movie_id"`
	Rating  int       `json:"rating,omitempty"`
	At      time.Time `json:"at"`
}
