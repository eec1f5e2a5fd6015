package books

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/filex"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/objectstore"
	"github.com/google/uuid"
)

// RawRepository transfers book files to the object store.
// Errors: common.ErrFileRead, ErrUploadFailed, ErrNetwork or
// *common.UnknownError.
type RawRepository interface {
	// UploadFile stores src under uploads/<uuid>_<fileName> and returns the
	// public URL. onProgress may be nil.
	UploadFile(ctx context.Context, src io.Reader, fileName string, onProgress func(float64)) (string, error)
}

type rawRepository struct {
	objects    objectstore.Store
	stagingDir string
	log        logging.Logger
}

// NewRawRepository stages uploads in stagingDir ("" means the OS temp dir).
func NewRawRepository(objects objectstore.Store, stagingDir string, log logging.Logger) RawRepository {
	return &rawRepository{objects: objects, stagingDir: stagingDir, log: log.With("repo", "files")}
}

func (r *rawRepository) UploadFile(ctx context.Context, src io.Reader, fileName string, onProgress func(float64)) (string, error) {
	if src == nil {
		return "", common.ErrFileRead
	}

	name := filepath.Base(fileName)
	key := common.UploadsPrefix + uuid.NewString() + "_" + name

	f, size, cleanup, err := filex.Stage(ctx, r.stagingDir, "upload-*", src)
	if err != nil {
		r.log.Warn(ctx, "staging upload failed", "file", name, "error", err)
		return "", common.ErrFileRead
	}
	defer cleanup()

	body := &filex.ProgressReader{R: f, Total: size, OnProgress: onProgress}
	if err := r.objects.Put(ctx, key, body, size, objectstore.ContentType(name)); err != nil {
		r.log.Warn(ctx, "put object failed", "key", key, "error", err)
		switch {
		case errors.Is(err, objectstore.ErrUnavailable):
			return "", common.ErrNetwork
		case ctx.Err() != nil:
			return "", common.Unknown("upload canceled")
		default:
			return "", common.ErrUploadFailed
		}
	}

	r.log.Info(ctx, "file uploaded", "key", key, "size", size)
	return r.objects.URL(key), nil
}
