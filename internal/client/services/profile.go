package services

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/profile"
	"github.com/dmitrijs2005/gophshelf/internal/common"
	"golang.org/x/sync/errgroup"
)

// ProfileService reads and edits the signed-in reader's profile.
//
// Errors: common.ErrNetwork, ErrNotAuthorized, ErrNotFound, ErrInvalidName,
// ErrUploadFailed or *common.UnknownError.
type ProfileService interface {
	GetProfile(ctx context.Context) (models.UserProfile, error)
	UpdateName(ctx context.Context, firstName, lastName string) error
	// UpdatePhoto uploads src as the avatar and returns its URL.
	UpdatePhoto(ctx context.Context, src io.Reader) (string, error)
	// DownloadPhoto fetches the avatar stored at url.
	DownloadPhoto(ctx context.Context, url string) ([]byte, error)
	SignOut(ctx context.Context) error
}

type profileService struct {
	session profile.SessionRepository
	users   profile.UserRepository
	images  profile.ImageRepository
	photos  profile.PhotoRepository
}

func NewProfileService(
	session profile.SessionRepository,
	users profile.UserRepository,
	images profile.ImageRepository,
	photos profile.PhotoRepository,
) ProfileService {
	return &profileService{session: session, users: users, images: images, photos: photos}
}

// GetProfile reads the users and image documents concurrently. No partial
// profile is produced. When both reads fail the users error is returned.
func (s *profileService) GetProfile(ctx context.Context) (models.UserProfile, error) {
	uid, ok := s.session.UserID()
	if !ok {
		return models.UserProfile{}, common.ErrNotAuthorized
	}

	var (
		p                  models.UserProfile
		photoURL           string
		usersErr, imageErr error
		g                  errgroup.Group
	)
	g.Go(func() error {
		p, usersErr = s.users.GetUserInfo(ctx, uid)
		return nil
	})
	g.Go(func() error {
		photoURL, imageErr = s.images.GetUserImage(ctx, uid)
		return nil
	})
	_ = g.Wait()
	if usersErr != nil {
		return models.UserProfile{}, usersErr
	}
	if imageErr != nil {
		return models.UserProfile{}, imageErr
	}

	p.UserID = uid
	p.Email = s.session.Email()
	p.Phone = s.session.Phone()
	p.PhotoURL = photoURL
	return p, nil
}

func (s *profileService) UpdateName(ctx context.Context, firstName, lastName string) error {
	uid, ok := s.session.UserID()
	if !ok {
		return common.ErrNotAuthorized
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return common.ErrInvalidName
	}
	return s.users.UpdateUserName(ctx, uid, firstName, lastName)
}

func (s *profileService) UpdatePhoto(ctx context.Context, src io.Reader) (string, error) {
	uid, ok := s.session.UserID()
	if !ok {
		return "", common.ErrNotAuthorized
	}

	url, err := s.photos.UploadImage(ctx, src, common.AvatarFileName)
	if err != nil {
		return "", err
	}
	if err := s.images.SetUserImage(ctx, uid, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *profileService) DownloadPhoto(ctx context.Context, url string) ([]byte, error) {
	if _, ok := s.session.UserID(); !ok {
		return nil, common.ErrNotAuthorized
	}
	if url == "" {
		return nil, common.ErrNotFound
	}
	return s.photos.DownloadImage(ctx, url)
}

func (s *profileService) SignOut(ctx context.Context) error {
	return s.session.SignOut(ctx)
}
