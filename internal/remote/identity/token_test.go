package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	u := User{ID: "user-123", Email: "ada@example.com", Phone: "+100"}

	tok, err := GenerateToken(u, secret, time.Hour)
	require.NoError(t, err)

	got, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, u, *got)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(User{ID: "u1"}, []byte("secret"), -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("secret"))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(User{ID: "u1"}, []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("other"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not-a-jwt", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_MissingUserID(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
