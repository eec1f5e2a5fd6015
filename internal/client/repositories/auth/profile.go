package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/docstore"
)

// ProfileRepository writes the initial users/<uid> document.
type ProfileRepository interface {
	CreateUserProfile(ctx context.Context, uid, firstName, lastName string) error
}

type profileRepository struct {
	docs docstore.Store
	log  logging.Logger
}

func NewProfileRepository(docs docstore.Store, log logging.Logger) ProfileRepository {
	return &profileRepository{docs: docs, log: log.With("repo", "users")}
}

// CreateUserProfile replaces any existing document for uid.
// Errors: common.ErrNetwork or *common.UnknownError.
func (r *profileRepository) CreateUserProfile(ctx context.Context, uid, firstName, lastName string) error {
	err := r.docs.Set(ctx, common.UsersCollection, uid, map[string]any{
		"firstName": firstName,
		"lastName":  lastName,
		"userId":    uid,
	}, false)
	if err != nil {
		r.log.Error(ctx, "create user profile failed", "uid", uid, "error", err)
		if errors.Is(err, docstore.ErrUnavailable) {
			return common.ErrNetwork
		}
		return common.Unknown(err.Error())
	}
	return nil
}
