package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"movierec/pkg/apperr"
	"movierec/pkg/database"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepo(db)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Create(ctx, "alice", hashFor(t, "password-1"))
	require.NoError(t, err)
	id2, err := repo.Create(ctx, "bob", hashFor(t, "password-2"))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	u, err := repo.GetByID(ctx, id1)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a", hashFor(t, "password-1"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, "a", hashFor(t, "password-2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrAlreadyExists))

	// exactly one row survives
	var n int
	require.NoError(t, repo.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'a'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestGetByUsernameMissIsNil(t *testing.T) {
	repo := newTestRepo(t)

	u, err := repo.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestVerify(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, "carol", hashFor(t, "s3cret-pass"))
	require.NoError(t, err)

	gotID, ok, err := repo.Verify(ctx, "carol", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, gotID)

	_, ok, err = repo.Verify(ctx, "carol", "wrong-pass")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.Verify(ctx, "nobody", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, ok)
}
