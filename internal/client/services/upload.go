// Package services contains the GophShelf client use cases. Each service
// sequences repository calls and maps their errors into the use case's own
// error set.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/books"
	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
)

// UploadBookService stores a book file and then records its metadata.
//
// Errors:
//   - common.ErrNetwork: either step could not reach its backend.
//   - common.ErrFileUploadFailed: the file was not stored; no metadata written.
//   - common.ErrMetadataSaveFailed: the file is stored but unreferenced.
type UploadBookService interface {
	Upload(ctx context.Context, req models.UploadRequest) error
}

type uploadBookService struct {
	raw  books.RawRepository
	meta books.MetaRepository
	log  logging.Logger
}

func NewUploadBookService(raw books.RawRepository, meta books.MetaRepository, log logging.Logger) UploadBookService {
	return &uploadBookService{raw: raw, meta: meta, log: log.With("service", "upload")}
}

func (s *uploadBookService) Upload(ctx context.Context, req models.UploadRequest) error {
	url, err := s.raw.UploadFile(ctx, req.Source, req.FileName, req.OnProgress)
	if err != nil {
		s.log.Warn(ctx, "book file upload failed", "file", req.FileName, "error", err)
		if errors.Is(err, common.ErrNetwork) {
			return common.ErrNetwork
		}
		return common.ErrFileUploadFailed
	}

	if err := s.meta.UploadMeta(ctx, req.UserID, req.Title, req.Author, url); err != nil {
		s.log.Error(ctx, "book metadata not saved, file orphaned", "url", url, "error", err)
		if errors.Is(err, common.ErrNetwork) {
			return common.ErrNetwork
		}
		return common.ErrMetadataSaveFailed
	}

	s.log.Info(ctx, "book uploaded", "title", req.Title, "url", url)
	return nil
}
