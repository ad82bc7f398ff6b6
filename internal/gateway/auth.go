// internal/gateway/auth.go
//
// Gateway authentication: clients exchange the shared connect token for a
// short-lived signed session token naming the player, and present that on
// the websocket upgrade. The configured connect token is stored as a
// bcrypt hash so the plaintext never lives in config files or logs.

package gateway

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL bounds how long an issued session token stays valid.
const DefaultSessionTTL = 12 * time.Hour

var errInvalidToken = errors.New("invalid session token")

// VerifyConnectToken checks a presented token against the configured bcrypt
// hash. An empty hash disables the check (local development).
func VerifyConnectToken(hash, token string) bool {
	if hash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// SignSessionToken issues an HS256 token for a player.
func SignSessionToken(secret []byte, player string, ttl time.Duration) (string, time.Time, error) {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	exp := time.Now().Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"player": player,
		"exp":    exp.Unix(),
		"iat":    time.Now().Unix(),
	})
	ss, err := token.SignedString(secret)
	return ss, exp, err
}

// ParseSessionToken validates a session token and returns the player it
// names.
func ParseSessionToken(secret []byte, tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	player, _ := claims["player"].(string)
	if player == "" {
		return "", errInvalidToken
	}
	return player, nil
}

// BearerOrQuery extracts a session token from the Authorization header or,
// for websocket dials that cannot set headers, the "token" query parameter.
func BearerOrQuery(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get("token")
}
