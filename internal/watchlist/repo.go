package watchlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"movierec/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Add inserts a watchlist entry and reports whether it was new. The insert
// itself resolves duplicates through the composite primary key, so two
// concurrent identical requests can never produce two rows.
func (r *Repo) Add(ctx context.Context, userID int64, movieID int, title string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_watchlist (user_id, movie_id, movie_title)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, movie_id) DO NOTHING
	`, userID, movieID, title)
	if err != nil {
		return false, fmt.Errorf("add watchlist entry: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Remove deletes an entry if present. Removing an absent entry is a no-op.
func (r *Repo) Remove(ctx context.Context, userID int64, movieID int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM user_watchlist
		WHERE user_id = ? AND movie_id = ?
	`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("remove watchlist entry: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) Contains(ctx context.Context, userID int64, movieID int) (bool, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT 1 FROM user_watchlist
		WHERE user_id = ? AND movie_id = ?
	`, userID, movieID)

	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("contains watchlist entry: %w", err)
	}
	return true, nil
}

// List returns the user's watchlist. Order is not part of the contract.
func (r *Repo) List(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, movie_id, movie_title, added_at
		FROM user_watchlist
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	out := make([]models.WatchlistEntry, 0, 16)
	for rows.Next() {
		var e models.WatchlistEntry
		var added time.Time
		if err := rows.Scan(&e.UserID, &e.MovieID, &e.MovieTitle, &added); err != nil {
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		e.AddedAt = added
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
