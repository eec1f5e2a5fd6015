// Package auth adapts the identity provider and the users collection for
// sign-in and registration.
package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/identity"
)

// Repository signs readers in and creates accounts.
//
// Login and Register fail with common.ErrNetwork, ErrUserCollision,
// ErrWeakPassword, ErrInvalidCredentials or *common.UnknownError.
// IsUserAuth and CurrentUserID never touch the network.
type Repository interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error
	IsUserAuth() (bool, error)
	CurrentUserID() (string, bool)
}

type repository struct {
	provider identity.Provider
	log      logging.Logger
}

func NewRepository(provider identity.Provider, log logging.Logger) Repository {
	return &repository{provider: provider, log: log.With("repo", "auth")}
}

func (r *repository) Login(ctx context.Context, email, password string) error {
	if _, err := r.provider.SignIn(ctx, email, password); err != nil {
		r.log.Warn(ctx, "sign in failed", "error", err)
		return mapIdentityErr(err)
	}
	return nil
}

func (r *repository) Register(ctx context.Context, email, password string) error {
	if _, err := r.provider.CreateAccount(ctx, email, password); err != nil {
		r.log.Warn(ctx, "create account failed", "error", err)
		return mapIdentityErr(err)
	}
	return nil
}

func (r *repository) IsUserAuth() (bool, error) {
	return r.provider.CurrentUser() != nil, nil
}

func (r *repository) CurrentUserID() (string, bool) {
	u := r.provider.CurrentUser()
	if u == nil {
		return "", false
	}
	return u.ID, true
}

func mapIdentityErr(err error) error {
	switch {
	case errors.Is(err, identity.ErrUnavailable):
		return common.ErrNetwork
	case errors.Is(err, identity.ErrUserCollision):
		return common.ErrUserCollision
	case errors.Is(err, identity.ErrWeakPassword):
		return common.ErrWeakPassword
	case errors.Is(err, identity.ErrInvalidCredentials):
		return common.ErrInvalidCredentials
	default:
		return common.Unknown(err.Error())
	}
}
