package gateway

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyConnectToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyConnectToken(string(hash), "s3cret"))
	assert.False(t, VerifyConnectToken(string(hash), "wrong"))
	// Empty hash disables the check.
	assert.True(t, VerifyConnectToken("", "anything"))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test_secret")
	tok, exp, err := SignSessionToken(secret, "p1", time.Hour)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	player, err := ParseSessionToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "p1", player)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	tok, _, err := SignSessionToken([]byte("secret-a"), "p1", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("secret-b"), tok)
	assert.Error(t, err)
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	tok, _, err := SignSessionToken([]byte("secret"), "p1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("secret"), tok)
	assert.Error(t, err)
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	_, err := ParseSessionToken([]byte("secret"), "not.a.token")
	assert.Error(t, err)
}

func TestBearerOrQuery(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/ws?token=query-token", nil)
	assert.Equal(t, "query-token", BearerOrQuery(r))

	r.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", BearerOrQuery(r))
}
