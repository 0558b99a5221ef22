package ratings

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movierec/pkg/apperr"
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

func TestUpsertRejectsOutOfRange(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()

	for _, bad := range []int{0, -1, 6, 100} {
		err := repo.Upsert(ctx, uid, 1, bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "rating %d", bad)
	}

	// nothing was written
	rt, err := repo.Get(ctx, uid, 1)
	require.NoError(t, err)
	assert.Nil(t, rt)
}

func TestUpsertReplacesPriorValue(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, uid, 1, 3))
	require.NoError(t, repo.Upsert(ctx, uid, 1, 5))

	rt, err := repo.Get(ctx, uid, 1)
	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, 5, rt.Rating)

	sum, err := repo.Summary(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, 1, sum.Count) // replaced, not duplicated
	assert.Equal(t, 5.0, sum.Average)
}

func TestGetMissIsNil(t *testing.T) {
	repo, uid := newTestRepo(t)

	rt, err := repo.Get(context.Background(), uid, 42)
	require.NoError(t, err)
	assert.Nil(t, rt)
}

func TestSummaryRoundsToOneDecimal(t *testing.T) {
	repo, uid := newTestRepo(t)
	ctx := context.Background()
	u2 := insertUser(t, repo.DB, "second")
	u3 := insertUser(t, repo.DB, "third")

	require.NoError(t, repo.Upsert(ctx, uid, 1, 1))
	require.NoError(t, repo.Upsert(ctx, u2, 1, 2))
	require.NoError(t, repo.Upsert(ctx, u3, 1, 2))

	sum, err := repo.Summary(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 1.7, sum.Average) // 5/3 rounded to 1 decimal
}

func TestSummaryWithoutRatingsIsAbsent(t *testing.T) {
	repo, _ := newTestRepo(t)

	sum, err := repo.Summary(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, sum) // explicit absence, never numeric 0.0
}
