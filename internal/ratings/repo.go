package ratings

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"movierec/pkg/apperr"
	"movierec/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert stores a user's rating for a movie, replacing any prior value for
// the pair and refreshing its timestamp. Values outside 1..5 are a caller
// contract violation and are rejected before touching the store.
func (r *Repo) Upsert(ctx context.Context, userID int64, movieID, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating %d out of range 1..5", apperr.ErrInvalidArgument, rating)
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO movie_ratings (user_id, movie_id, rating, rated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, movie_id) DO UPDATE SET
			rating = excluded.rating,
			rated_at = CURRENT_TIMESTAMP
	`, userID, movieID, rating)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Get returns the user's rating for a movie, or nil if they never rated it.
func (r *Repo) Get(ctx context.Context, userID int64, movieID int) (*models.Rating, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT user_id, movie_id, rating, rated_at
		FROM movie_ratings
		WHERE user_id = ? AND movie_id = ?
	`, userID, movieID)

	var rt models.Rating
	var at time.Time
	if err := row.Scan(&rt.UserID, &rt.MovieID, &rt.Rating, &at); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}
	rt.RatedAt = at
	return &rt, nil
}

// Summary computes the mean rating and count for a movie on demand. A movie
// with no ratings yields a nil summary, never a numeric zero.
func (r *Repo) Summary(ctx context.Context, movieID int) (*models.RatingSummary, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(rating)
		FROM movie_ratings
		WHERE movie_id = ?
	`, movieID)

	var count int
	var avg sql.NullFloat64
	if err := row.Scan(&count, &avg); err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	if count == 0 || !avg.Valid {
		return nil, nil
	}

	return &models.RatingSummary{
		MovieID: movieID,
		Average: math.Round(avg.Float64*10) / 10,
		Count:   count,
	}, nil
}
