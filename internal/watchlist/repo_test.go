package watchlist

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movierec/pkg/database"
)

func newTestRepo(t *testing.T) (*Repo, int64) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	uid := insertUser(t, db, "tester")
	return NewRepo(db), uid
}

func insertUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO users (username, password_hash) VALUES (?, 'x')`, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestAddTwice(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.Add(ctx, uid, 7, "X")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(ctx, uid, 7, "X")
	require.NoError(t, err)
	assert.False(t, added)

	// no duplicate rows ever
	var n int
	require.NoError(t, repo.DB.QueryRow(
		`SELECT COUNT(*) FROM user_watchlist WHERE user_id = ? AND movie_id = 7`, uid).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRemoveIsIdempotent(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, uid, 7, "X")
	require.NoError(t, err)

	removed, err := repo.Remove(ctx, uid, 7)
	require.NoError(t, err)
	assert.True(t, removed)

	in, err := repo.Contains(ctx, uid, 7)
	require.NoError(t, err)
	assert.False(t, in)

	// removing again is a no-op, not an error
	removed, err = repo.Remove(ctx, uid, 7)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestContains(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()

	in, err := repo.Contains(ctx, uid, 9)
	require.NoError(t, err)
	assert.False(t, in)

	_, err = repo.Add(ctx, uid, 9, "Y")
	require.NoError(t, err)

	in, err = repo.Contains(ctx, uid, 9)
	require.NoError(t, err)
	assert.True(t, in)
}

func TestListIsPerUser(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()
	other := insertUser(t, repo.DB, "other")

	_, err := repo.Add(ctx, uid, 1, "A")
	require.NoError(t, err)
	_, err = repo.Add(ctx, uid, 2, "B")
	require.NoError(t, err)
	_, err = repo.Add(ctx, other, 3, "C")
	require.NoError(t, err)

	entries, err := repo.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	seen := map[int]string{}
	for _, e := range entries {
		assert.Equal(t, uid, e.UserID)
		seen[e.MovieID] = e.MovieTitle
	}
	assert.Equal(t, map[int]string{1: "A", 2: "B"}, seen)
}

func TestCascadeOnUserDelete(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, uid, 1, "A")
	require.NoError(t, err)

	_, err = repo.DB.Exec(`DELETE FROM users WHERE id = ?`, uid)
	require.NoError(t, err)

	var n int
	require.NoError(t, repo.DB.QueryRow(
		`SELECT COUNT(*) FROM user_watchlist WHERE user_id = ?`, uid).Scan(&n))
	assert.Equal(t, 0, n)
}
