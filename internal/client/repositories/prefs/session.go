package prefs

import (
	"context"
)

// KeySessionToken holds the signed identity session.
const KeySessionToken = "session_token"

// SessionStore keeps the identity session token in the prefs table.
type SessionStore struct {
	repo Repository
}

func NewSessionStore(repo Repository) *SessionStore {
	return &SessionStore{repo: repo}
}

// LoadToken returns the stored token or "" when signed out.
func (s *SessionStore) LoadToken(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeySessionToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SessionStore) SaveToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeySessionToken, []byte(token))
}

func (s *SessionStore) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, KeySessionToken)
}
