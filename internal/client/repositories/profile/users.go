package profile

import (
	"context"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/docstore"
)

// UserRepository reads and updates users/<uid>.
// Errors: common.ErrNetwork, ErrNotFound or *common.UnknownError.
type UserRepository interface {
	GetUserInfo(ctx context.Context, userID string) (models.UserProfile, error)
	UpdateUserName(ctx context.Context, userID, firstName, lastName string) error
}

type userRepository struct {
	docs docstore.Store
	log  logging.Logger
}

func NewUserRepository(docs docstore.Store, log logging.Logger) UserRepository {
	return &userRepository{docs: docs, log: log.With("repo", "users")}
}

func (r *userRepository) GetUserInfo(ctx context.Context, userID string) (models.UserProfile, error) {
	d, err := r.docs.Get(ctx, common.UsersCollection, userID)
	if err != nil {
		r.log.Warn(ctx, "get user failed", "uid", userID, "error", err)
		return models.UserProfile{}, mapDocErr(err)
	}
	return models.UserProfile{
		UserID:    userID,
		FirstName: d.String("firstName"),
		LastName:  d.String("lastName"),
	}, nil
}

func (r *userRepository) UpdateUserName(ctx context.Context, userID, firstName, lastName string) error {
	err := r.docs.Set(ctx, common.UsersCollection, userID, map[string]any{
		"userId":    userID,
		"firstName": firstName,
		"lastName":  lastName,
	}, true)
	if err != nil {
		r.log.Warn(ctx, "update user name failed", "uid", userID, "error", err)
		return mapDocErr(err)
	}
	return nil
}
