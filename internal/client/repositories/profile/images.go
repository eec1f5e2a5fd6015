package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/docstore"
	"github.com/dmitrijs2005/gophshelf/internal/remote/objectstore"
	"github.com/google/uuid"
)

// ImageRepository reads and updates image/<uid>, which holds the avatar URL.
type ImageRepository interface {
	// GetUserImage returns "" when the user has no avatar.
	GetUserImage(ctx context.Context, userID string) (string, error)
	SetUserImage(ctx context.Context, userID, fileURL string) error
}

type imageRepository struct {
	docs docstore.Store
	log  logging.Logger
}

func NewImageRepository(docs docstore.Store, log logging.Logger) ImageRepository {
	return &imageRepository{docs: docs, log: log.With("repo", "image")}
}

func (r *imageRepository) GetUserImage(ctx context.Context, userID string) (string, error) {
	d, err := r.docs.Get(ctx, common.ImageCollection, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		r.log.Warn(ctx, "get user image failed", "uid", userID, "error", err)
		return "", mapDocErr(err)
	}
	return d.String("fileUrl"), nil
}

func (r *imageRepository) SetUserImage(ctx context.Context, userID, fileURL string) error {
	err := r.docs.Set(ctx, common.ImageCollection, userID, map[string]any{
		"userId":  userID,
		"fileUrl": fileURL,
	}, true)
	if err != nil {
		r.log.Warn(ctx, "set user image failed", "uid", userID, "error", err)
		return mapDocErr(err)
	}
	return nil
}

// PhotoRepository stores avatar files in the object store.
type PhotoRepository interface {
	// UploadImage stores src under profile_images/<uuid>_<fileName> and
	// returns its URL. Errors: common.ErrNetwork, ErrUploadFailed or
	// *common.UnknownError.
	UploadImage(ctx context.Context, src io.Reader, fileName string) (string, error)

	// DownloadImage accepts either an object key or a URL produced by
	// UploadImage.
	DownloadImage(ctx context.Context, keyOrURL string) ([]byte, error)
}

type photoRepository struct {
	objects objectstore.Store
	log     logging.Logger
}

func NewPhotoRepository(objects objectstore.Store, log logging.Logger) PhotoRepository {
	return &photoRepository{objects: objects, log: log.With("repo", "photos")}
}

func (r *photoRepository) UploadImage(ctx context.Context, src io.Reader, fileName string) (string, error) {
	if src == nil {
		return "", common.Unknown("failed to read image file")
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", common.Unknown(fmt.Sprintf("failed to read image file: %v", err))
	}

	key := common.ProfileImagesPrefix + uuid.NewString() + "_" + fileName
	err = r.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), objectstore.ContentType(fileName))
	if err != nil {
		r.log.Warn(ctx, "upload image failed", "key", key, "error", err)
		if errors.Is(err, objectstore.ErrUnavailable) {
			return "", common.ErrNetwork
		}
		return "", common.ErrUploadFailed
	}
	return r.objects.URL(key), nil
}

func (r *photoRepository) DownloadImage(ctx context.Context, keyOrURL string) ([]byte, error) {
	key := r.objects.KeyFromURL(keyOrURL)
	rc, err := r.objects.Get(ctx, key)
	if err != nil {
		r.log.Warn(ctx, "download image failed", "key", key, "error", err)
		return nil, mapObjectErr(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, common.ErrNetwork
	}
	return data, nil
}
