package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session user alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
}

// GenerateToken signs a session for u valid for validity.
func GenerateToken(u User, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: u.ID,
		Email:  u.Email,
		Phone:  u.Phone,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates tokenString and returns its user.
// Expired tokens yield ErrTokenExpired, anything else invalid ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &User{ID: claims.UserID, Email: claims.Email, Phone: claims.Phone}, nil
}
