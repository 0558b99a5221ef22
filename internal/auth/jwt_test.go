package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "movierec-test",
		Duration: time.Hour,
	}

	u := &User{ID: 42, Username: "dave"}
	token, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "dave", claims.Username)
	assert.Equal(t, "movierec-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := TokenService{Secret: []byte("secret-a"), Issuer: "movierec", Duration: time.Hour}
	token, _, err := ts.Sign(&User{ID: 1, Username: "eve"})
	require.NoError(t, err)

	other := TokenService{Secret: []byte("secret-b"), Issuer: "movierec", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("secret"), Issuer: "movierec", Duration: -time.Minute}
	token, _, err := ts.Sign(&User{ID: 1, Username: "eve"})
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}
