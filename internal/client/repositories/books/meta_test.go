package books

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
	"github.com/dmitrijs2005/gophshelf/internal/remote/docstore"
	"github.com/dmitrijs2005/gophshelf/internal/remote/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDocs struct {
	docstore.Store
	err error
}

func (f *failingDocs) List(context.Context, string) ([]docstore.Document, error) { return nil, f.err }
func (f *failingDocs) Add(context.Context, string, map[string]any) (string, error) {
	return "", f.err
}

type stubObjects struct {
	*objectstore.MemoryStore
	getErr error
	body   io.Reader
}

func (s *stubObjects) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.body != nil {
		return io.NopCloser(s.body), nil
	}
	return s.MemoryStore.Get(ctx, key)
}

type brokenReader struct{ sent bool }

func (b *brokenReader) Read(p []byte) (int, error) {
	if !b.sent {
		b.sent = true
		return copy(p, "%PDF-1.4 partial"), nil
	}
	return 0, errors.New("connection reset by peer")
}

func newMeta(t *testing.T, docs docstore.Store, objects objectstore.Store) (*metaRepository, string) {
	t.Helper()
	dir := t.TempDir()
	r := NewMetaRepository(docs, objects, dir, logging.Nop()).(*metaRepository)
	return r, dir
}

func seed(t *testing.T, docs docstore.Store, id string, data map[string]any) {
	t.Helper()
	require.NoError(t, docs.Set(context.Background(), common.BooksCollection, id, data, false))
}

func TestListBooks_MapsRecords(t *testing.T) {
	docs := docstore.NewMemoryStore()
	objects := objectstore.NewMemoryStore("http://s3", "books")
	r, dir := newMeta(t, docs, objects)

	seed(t, docs, "b1", map[string]any{
		"title": "Dune", "author": "Herbert", "dateAdded": int64(1700000000000),
		"fileUrl": "http://s3/books/uploads/u1_dune.epub?X-Amz-Signature=1",
	})
	seed(t, docs, "b2", map[string]any{"fileUrl": "http://s3/books/uploads/u2_notes"})
	seed(t, docs, "b3", map[string]any{"title": "No file"})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b1.epub"), []byte("x"), 0o600))

	books, err := r.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)

	byID := map[string]models.Book{}
	for _, b := range books {
		byID[b.ID] = b
	}

	b1 := byID["b1"]
	assert.Equal(t, "Dune", b1.Title)
	assert.Equal(t, "Herbert", b1.Author)
	assert.Equal(t, "uploads/u1_dune.epub", b1.StorageKey)
	assert.Equal(t, "epub", b1.Extension)
	assert.Equal(t, int64(1700000000000), b1.DateAdded)
	assert.True(t, b1.IsDownloaded)
	assert.Equal(t, filepath.Join(dir, "b1.epub"), b1.LocalPath)

	b2 := byID["b2"]
	assert.Equal(t, common.UnknownTitle, b2.Title)
	assert.Equal(t, common.UnknownAuthor, b2.Author)
	assert.Equal(t, "bin", b2.Extension)
	assert.False(t, b2.IsDownloaded)
	assert.Empty(t, b2.LocalPath)
}

func TestListBooks_DownloadedMatchesCache(t *testing.T) {
	docs := docstore.NewMemoryStore()
	r, dir := newMeta(t, docs, objectstore.NewMemoryStore("http://s3", "books"))

	for _, id := range []string{"a", "b", "c"} {
		seed(t, docs, id, map[string]any{"fileUrl": "http://s3/books/uploads/" + id + ".txt"})
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o600))

	books, err := r.ListBooks(context.Background())
	require.NoError(t, err)
	for _, b := range books {
		_, statErr := os.Stat(filepath.Join(dir, b.ID+".txt"))
		assert.Equal(t, statErr == nil, b.IsDownloaded, b.ID)
	}
}

func TestListBooks_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"network", docstore.ErrUnavailable, common.ErrNetwork},
		{"permission", docstore.ErrPermissionDenied, common.ErrPermissionDenied},
		{"other", errors.New("db error: boom"), common.ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newMeta(t, &failingDocs{err: tt.err}, objectstore.NewMemoryStore("http://s3", "books"))

			_, err := r.ListBooks(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.NotErrorIs(t, err, tt.err)
		})
	}
}

func TestDownloadBook_Success(t *testing.T) {
	objects := objectstore.NewMemoryStore("http://s3", "books")
	require.NoError(t, objects.Put(context.Background(), "uploads/k_dune.txt", strings.NewReader("Chapter 1"), 9, "text/plain"))
	r, dir := newMeta(t, docstore.NewMemoryStore(), objects)

	in := models.Book{ID: "b1", FileURL: objects.URL("uploads/k_dune.txt"), Extension: "txt"}
	out, err := r.DownloadBook(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, out.IsDownloaded)
	assert.Equal(t, filepath.Join(dir, "b1.txt"), out.LocalPath)
	assert.Equal(t, "uploads/k_dune.txt", out.StorageKey)
	assert.False(t, in.IsDownloaded)

	data, err := os.ReadFile(out.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, "Chapter 1", string(data))
}

func TestDownloadBook_NotFound(t *testing.T) {
	r, dir := newMeta(t, docstore.NewMemoryStore(), objectstore.NewMemoryStore("http://s3", "books"))

	in := models.Book{ID: "b1", StorageKey: "uploads/missing.pdf", Extension: "pdf"}
	out, err := r.DownloadBook(context.Background(), in)
	assert.ErrorIs(t, err, common.ErrFileNotFound)
	assert.Equal(t, in, out)
	assert.NoFileExists(t, filepath.Join(dir, "b1.pdf"))
}

func TestDownloadBook_Unavailable(t *testing.T) {
	objects := &stubObjects{
		MemoryStore: objectstore.NewMemoryStore("http://s3", "books"),
		getErr:      objectstore.ErrUnavailable,
	}
	r, _ := newMeta(t, docstore.NewMemoryStore(), objects)

	_, err := r.DownloadBook(context.Background(), models.Book{ID: "b1", StorageKey: "k.pdf", Extension: "pdf"})
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestDownloadBook_MidTransferFailureLeavesNoFile(t *testing.T) {
	objects := &stubObjects{
		MemoryStore: objectstore.NewMemoryStore("http://s3", "books"),
		body:        &brokenReader{},
	}
	r, dir := newMeta(t, docstore.NewMemoryStore(), objects)

	in := models.Book{ID: "b1", StorageKey: "uploads/k.pdf", Extension: "pdf"}
	out, err := r.DownloadBook(context.Background(), in)
	assert.ErrorIs(t, err, common.ErrNetwork)
	assert.Equal(t, in, out)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadBook_Canceled(t *testing.T) {
	objects := objectstore.NewMemoryStore("http://s3", "books")
	require.NoError(t, objects.Put(context.Background(), "k.txt", strings.NewReader("x"), 1, ""))
	r, dir := newMeta(t, docstore.NewMemoryStore(), objects)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.DownloadBook(ctx, models.Book{ID: "b1", StorageKey: "k.txt", Extension: "txt"})
	assert.ErrorIs(t, err, common.ErrUnknown)
	assert.NoFileExists(t, filepath.Join(dir, "b1.txt"))
}

func TestDeleteBook_Idempotent(t *testing.T) {
	r, dir := newMeta(t, docstore.NewMemoryStore(), objectstore.NewMemoryStore("http://s3", "books"))
	p := filepath.Join(dir, "b1.txt")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))

	in := models.Book{ID: "b1", Extension: "txt", LocalPath: p, IsDownloaded: true}

	out, err := r.DeleteBook(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, out.IsDownloaded)
	assert.Empty(t, out.LocalPath)
	assert.NoFileExists(t, p)

	out, err = r.DeleteBook(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, out.IsDownloaded)
}

func TestDeleteBook_Failure(t *testing.T) {
	r, dir := newMeta(t, docstore.NewMemoryStore(), objectstore.NewMemoryStore("http://s3", "books"))

	// A non-empty directory cannot be removed with os.Remove.
	p := filepath.Join(dir, "b1.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(p, "child"), 0o700))

	_, err := r.DeleteBook(context.Background(), models.Book{ID: "b1", Extension: "txt", LocalPath: p})
	assert.ErrorIs(t, err, common.ErrUnknown)
	assert.EqualError(t, err, "failed to delete file")
}

func TestUploadMeta(t *testing.T) {
	docs := docstore.NewMemoryStore()
	r, _ := newMeta(t, docs, objectstore.NewMemoryStore("http://s3", "books"))
	r.now = func() time.Time { return time.UnixMilli(1700000000123) }

	require.NoError(t, r.UploadMeta(context.Background(), "u1", "Dune", "Herbert", "http://s3/books/uploads/x_dune.epub"))

	list, err := docs.List(context.Background(), common.BooksCollection)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dune", list[0].String("title"))
	assert.Equal(t, "Herbert", list[0].String("author"))
	assert.Equal(t, "u1", list[0].String("userId"))
	assert.Equal(t, "http://s3/books/uploads/x_dune.epub", list[0].String("fileUrl"))
	ms, ok := list[0].Int64("dateAdded")
	require.True(t, ok)
	assert.Equal(t, int64(1700000000123), ms)
}

func TestUploadMeta_Errors(t *testing.T) {
	r, _ := newMeta(t, &failingDocs{err: docstore.ErrUnavailable}, objectstore.NewMemoryStore("http://s3", "books"))
	assert.ErrorIs(t, r.UploadMeta(context.Background(), "u1", "t", "a", "u"), common.ErrNetwork)

	r, _ = newMeta(t, &failingDocs{err: errors.New("constraint")}, objectstore.NewMemoryStore("http://s3", "books"))
	assert.ErrorIs(t, r.UploadMeta(context.Background(), "u1", "t", "a", "u"), common.ErrUnknown)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("uploads/x_book.pdf"))
	assert.Equal(t, "gz", Extension("uploads/x_book.tar.gz"))
	assert.Equal(t, "bin", Extension("uploads/x_book"))
	assert.Equal(t, "bin", Extension("uploads.d/x_book"))
}
