// Package identity authenticates readers. Accounts (email, phone, password
// verifier) live in PostgreSQL; a signed-in session is an HS256 token kept in
// a local TokenStore so the current user is known without network access.
package identity

import (
	"context"
	"errors"
)

var (
	ErrUserCollision      = errors.New("account with this email already exists")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnavailable        = errors.New("identity provider unavailable")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrTokenExpired       = errors.New("session token expired")
)

// MinPasswordLength is the shortest password accepted for new accounts.
const MinPasswordLength = 6

// User is the identity of a signed-in reader.
type User struct {
	ID    string
	Email string
	Phone string
}

// Provider creates accounts and manages the local session.
type Provider interface {
	// CreateAccount registers email/password and signs the new user in.
	CreateAccount(ctx context.Context, email, password string) (*User, error)

	// SignIn verifies credentials and starts a session.
	SignIn(ctx context.Context, email, password string) (*User, error)

	// CurrentUser returns the signed-in user or nil. It never blocks.
	CurrentUser() *User

	// SignOut ends the session.
	SignOut(ctx context.Context) error
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}
