package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"movierec/pkg/apperr"
	"movierec/pkg/models"
)

// Repo stores append-only posts for one table; reviews and comments share
// the exact same shape, so the same repo serves both.
type Repo struct {
	DB    *sql.DB
	table string
}

func NewReviewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db, table: "movie_reviews"}
}

func NewCommentRepo(db *sql.DB) *Repo {
	return &Repo{DB: db, table: "movie_comments"}
}

// Create appends a post. Empty or whitespace-only text is rejected before
// the insert; once stored, posts are never edited or deleted.
func (r *Repo) Create(ctx context.Context, userID int64, movieID int, text string) (*models.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", apperr.ErrInvalidArgument)
	}

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO `+r.table+` (user_id, movie_id, text)
		VALUES (?, ?, ?)
	`, userID, movieID, text)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, movie_id, text, created_at
		FROM `+r.table+`
		WHERE id = ?
	`, id)

	var rev models.Review
	var at time.Time
	if err := row.Scan(&rev.ID, &rev.UserID, &rev.MovieID, &rev.Text, &at); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", r.table, err)
	}
	rev.CreatedAt = at
	return &rev, nil
}

// ListByMovie returns a display window of posts, newest first. The id
// tiebreak keeps ordering deterministic when timestamps collide.
func (r *Repo) ListByMovie(ctx context.Context, movieID int, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, movie_id, text, created_at
		FROM `+r.table+`
		WHERE movie_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, movieID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, limit)
	for rows.Next() {
		var rev models.Review
		var at time.Time
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.MovieID, &rev.Text, &at); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", r.table, err)
		}
		rev.CreatedAt = at
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
