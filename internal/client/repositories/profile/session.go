// Package profile holds the repositories behind profile management: the
// session identity, the users and image documents and avatar files.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/remote/docstore"
	"github.com/dmitrijs2005/gophshelf/internal/remote/identity"
	"github.com/dmitrijs2005/gophshelf/internal/remote/objectstore"
)

// SessionRepository exposes the signed-in identity without network access.
type SessionRepository interface {
	UserID() (string, bool)
	Email() string
	Phone() string
	SignOut(ctx context.Context) error
}

type sessionRepository struct {
	provider identity.Provider
}

func NewSessionRepository(provider identity.Provider) SessionRepository {
	return &sessionRepository{provider: provider}
}

func (s *sessionRepository) UserID() (string, bool) {
	if u := s.provider.CurrentUser(); u != nil {
		return u.ID, true
	}
	return "", false
}

func (s *sessionRepository) Email() string {
	if u := s.provider.CurrentUser(); u != nil {
		return u.Email
	}
	return ""
}

func (s *sessionRepository) Phone() string {
	if u := s.provider.CurrentUser(); u != nil {
		return u.Phone
	}
	return ""
}

func (s *sessionRepository) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		return common.Unknown(fmt.Sprintf("sign out: %v", err))
	}
	return nil
}

func mapDocErr(err error) error {
	switch {
	case errors.Is(err, docstore.ErrUnavailable):
		return common.ErrNetwork
	case errors.Is(err, docstore.ErrNotFound):
		return common.ErrNotFound
	default:
		return common.Unknown(err.Error())
	}
}

func mapObjectErr(err error) error {
	switch {
	case errors.Is(err, objectstore.ErrUnavailable):
		return common.ErrNetwork
	case errors.Is(err, objectstore.ErrNotFound):
		return common.ErrNotFound
	default:
		return common.Unknown(err.Error())
	}
}
