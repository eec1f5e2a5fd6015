package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/auth"
	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
)

// RegisterService creates an account and its profile document.
//
// Errors: common.ErrUserAlreadyExists, ErrWeakPassword, ErrNetwork,
// *common.ProfileSaveFailedError (the account exists, its profile does not)
// or *common.UnknownError.
type RegisterService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) error
}

type registerService struct {
	auth     auth.Repository
	profiles auth.ProfileRepository
	log      logging.Logger
}

func NewRegisterService(a auth.Repository, profiles auth.ProfileRepository, log logging.Logger) RegisterService {
	return &registerService{auth: a, profiles: profiles, log: log.With("service", "register")}
}

func (s *registerService) Register(ctx context.Context, firstName, lastName, email, password string) error {
	if err := s.auth.Register(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, common.ErrUserCollision):
			return common.ErrUserAlreadyExists
		case errors.Is(err, common.ErrWeakPassword):
			return common.ErrWeakPassword
		case errors.Is(err, common.ErrNetwork):
			return common.ErrNetwork
		default:
			return common.Unknown(err.Error())
		}
	}

	uid, ok := s.auth.CurrentUserID()
	if !ok {
		return common.Unknown("user id not available after registration")
	}

	if err := s.profiles.CreateUserProfile(ctx, uid, firstName, lastName); err != nil {
		s.log.Error(ctx, "account created without profile", "uid", uid, "error", err)
		return &common.ProfileSaveFailedError{AccountID: uid, Err: err}
	}
	return nil
}
