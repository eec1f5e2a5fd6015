// Package books holds the library repositories: metadata records in the
// document store, book files in the object store and their local cache.
package books

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/filex"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/docstore"
	"github.com/dmitrijs2005/gophshelf/internal/remote/objectstore"
)

// MetaRepository lists, caches and records books.
// Errors: common.ErrNetwork, ErrPermissionDenied, ErrSaveFailed,
// ErrFileNotFound or *common.UnknownError.
type MetaRepository interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	DownloadBook(ctx context.Context, book models.Book) (models.Book, error)
	DeleteBook(ctx context.Context, book models.Book) (models.Book, error)
	UploadMeta(ctx context.Context, userID, title, author, fileURL string) error
}

type metaRepository struct {
	docs     docstore.Store
	objects  objectstore.Store
	cacheDir string
	log      logging.Logger
	now      func() time.Time
}

func NewMetaRepository(docs docstore.Store, objects objectstore.Store, cacheDir string, log logging.Logger) MetaRepository {
	return &metaRepository{
		docs:     docs,
		objects:  objects,
		cacheDir: cacheDir,
		log:      log.With("repo", "books"),
		now:      time.Now,
	}
}

func (r *metaRepository) ListBooks(ctx context.Context) ([]models.Book, error) {
	docs, err := r.docs.List(ctx, common.BooksCollection)
	if err != nil {
		r.log.Warn(ctx, "list books failed", "error", err)
		return nil, mapDocErr(err)
	}

	books := make([]models.Book, 0, len(docs))
	for _, d := range docs {
		url := d.String("fileUrl")
		if url == "" {
			continue
		}

		key := r.objects.KeyFromURL(url)
		b := models.Book{
			ID:         d.ID,
			Title:      orDefault(d.String("title"), common.UnknownTitle),
			Author:     orDefault(d.String("author"), common.UnknownAuthor),
			FileURL:    url,
			StorageKey: key,
			Extension:  Extension(key),
		}
		b.DateAdded, _ = d.Int64("dateAdded")

		if p := r.cachePath(b); filex.Exists(p) {
			b.LocalPath = p
			b.IsDownloaded = true
		}
		books = append(books, b)
	}
	return books, nil
}

func (r *metaRepository) DownloadBook(ctx context.Context, book models.Book) (models.Book, error) {
	key := book.StorageKey
	if key == "" {
		key = r.objects.KeyFromURL(book.FileURL)
	}

	if _, err := filex.EnsureDir(r.cacheDir); err != nil {
		r.log.Error(ctx, "cache dir unavailable", "error", err)
		return book, common.ErrSaveFailed
	}

	rc, err := r.objects.Get(ctx, key)
	if err != nil {
		r.log.Warn(ctx, "get object failed", "key", key, "error", err)
		return book, mapObjectErr(err, common.ErrFileNotFound)
	}
	defer rc.Close()

	src := &trackingReader{r: rc}
	dst := r.cachePath(book)
	if _, err := filex.WriteAtomic(ctx, dst, src); err != nil {
		r.log.Warn(ctx, "download failed", "id", book.ID, "error", err)
		switch {
		case ctx.Err() != nil:
			return book, common.Unknown("download canceled")
		case src.err != nil:
			return book, common.ErrNetwork
		default:
			return book, common.ErrSaveFailed
		}
	}

	downloaded := book
	downloaded.StorageKey = key
	downloaded.LocalPath = dst
	downloaded.IsDownloaded = true
	r.log.Info(ctx, "book downloaded", "id", book.ID, "path", dst)
	return downloaded, nil
}

func (r *metaRepository) DeleteBook(ctx context.Context, book models.Book) (models.Book, error) {
	p := book.LocalPath
	if p == "" {
		p = r.cachePath(book)
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.log.Warn(ctx, "delete cached file failed", "path", p, "error", err)
		return book, common.Unknown("failed to delete file")
	}

	deleted := book
	deleted.LocalPath = ""
	deleted.IsDownloaded = false
	return deleted, nil
}

func (r *metaRepository) UploadMeta(ctx context.Context, userID, title, author, fileURL string) error {
	_, err := r.docs.Add(ctx, common.BooksCollection, map[string]any{
		"title":     title,
		"author":    author,
		"fileUrl":   fileURL,
		"userId":    userID,
		"dateAdded": r.now().UnixMilli(),
	})
	if err != nil {
		r.log.Warn(ctx, "save book metadata failed", "error", err)
		return mapDocErr(err)
	}
	return nil
}

func (r *metaRepository) cachePath(b models.Book) string {
	ext := b.Extension
	if ext == "" {
		ext = common.DefaultExtension
	}
	return filepath.Join(r.cacheDir, b.ID+"."+ext)
}

// Extension returns the text after the last '.' of the key's final path
// element, or common.DefaultExtension when there is none.
func Extension(key string) string {
	ext := strings.TrimPrefix(path.Ext(key), ".")
	if ext == "" {
		return common.DefaultExtension
	}
	return ext
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func mapDocErr(err error) error {
	switch {
	case errors.Is(err, docstore.ErrUnavailable):
		return common.ErrNetwork
	case errors.Is(err, docstore.ErrPermissionDenied):
		return common.ErrPermissionDenied
	default:
		return common.Unknown(err.Error())
	}
}

func mapObjectErr(err error, notFound error) error {
	switch {
	case errors.Is(err, objectstore.ErrUnavailable):
		return common.ErrNetwork
	case errors.Is(err, objectstore.ErrPermissionDenied):
		return common.ErrPermissionDenied
	case errors.Is(err, objectstore.ErrNotFound):
		return notFound
	default:
		return common.Unknown(fmt.Sprintf("object store: %v", err))
	}
}

// trackingReader remembers the first read error so transfer failures can be
// told apart from local write failures.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}
