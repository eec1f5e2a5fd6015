package viewmodels

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
)

type fakeAuth struct {
	mu       sync.Mutex
	loginErr error
	logins   int
	uid      string
	authErr  error
}

func (f *fakeAuth) Login(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	return f.loginErr
}
func (f *fakeAuth) Register(context.Context, string, string) error { return nil }
func (f *fakeAuth) IsUserAuth() (bool, error)                      { return f.uid != "", f.authErr }
func (f *fakeAuth) CurrentUserID() (string, bool)                  { return f.uid, f.uid != "" }

func (f *fakeAuth) loginCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

type fakeRegister struct {
	err   error
	calls int
}

func (f *fakeRegister) Register(context.Context, string, string, string, string) error {
	f.calls++
	return f.err
}

type fakeLibrary struct {
	mu          sync.Mutex
	books       []models.Book
	listErr     error
	downloadErr error
	deleteErr   error

	// listGate, when set, holds ListBooks until it is closed.
	listGate chan struct{}
}

func (f *fakeLibrary) ListBooks(ctx context.Context) ([]models.Book, error) {
	if f.listGate != nil {
		select {
		case <-f.listGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Book(nil), f.books...), f.listErr
}

func (f *fakeLibrary) DownloadBook(_ context.Context, b models.Book) (models.Book, error) {
	if f.downloadErr != nil {
		return b, f.downloadErr
	}
	b.IsDownloaded, b.LocalPath = true, "/cache/"+b.ID+"."+b.Extension
	return b, nil
}

func (f *fakeLibrary) DeleteBook(_ context.Context, b models.Book) (models.Book, error) {
	if f.deleteErr != nil {
		return b, f.deleteErr
	}
	b.IsDownloaded, b.LocalPath = false, ""
	return b, nil
}

func (f *fakeLibrary) UploadMeta(context.Context, string, string, string, string) error { return nil }

// fakeUploader blocks the first call until its context is cancelled when
// blockFirst is set.
type fakeUploader struct {
	mu         sync.Mutex
	blockFirst bool
	started    chan struct{}
	err        error
	calls      []models.UploadRequest
}

func (f *fakeUploader) Upload(ctx context.Context, req models.UploadRequest) error {
	f.mu.Lock()
	n := len(f.calls)
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.blockFirst && n == 0 {
		close(f.started)
		<-ctx.Done()
		return ctx.Err()
	}
	if req.OnProgress != nil {
		req.OnProgress(0.5)
	}
	_, _ = io.ReadAll(req.Source)
	return f.err
}

type fakeProfileService struct {
	mu         sync.Mutex
	profile    models.UserProfile
	getErr     error
	updateErr  error
	photoURL   string
	photoErr   error
	signOutErr error
	names      [][2]string
	signedOut  bool
}

func (f *fakeProfileService) GetProfile(context.Context) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.getErr
}

func (f *fakeProfileService) UpdateName(_ context.Context, first, last string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.names = append(f.names, [2]string{first, last})
	f.profile.FirstName, f.profile.LastName = first, last
	return nil
}

func (f *fakeProfileService) UpdatePhoto(context.Context, io.Reader) (string, error) {
	return f.photoURL, f.photoErr
}

func (f *fakeProfileService) DownloadPhoto(_ context.Context, url string) ([]byte, error) {
	return []byte(url), nil
}

func (f *fakeProfileService) SignOut(context.Context) error {
	f.signedOut = f.signOutErr == nil
	return f.signOutErr
}

type fakeReaderPrefs struct {
	mu          sync.Mutex
	settings    models.ReaderSettings
	positions   map[string]models.ReadingPosition
	settingsErr error
	saveErr     error
}

func newFakeReaderPrefs() *fakeReaderPrefs {
	return &fakeReaderPrefs{settings: models.DefaultReaderSettings(), positions: map[string]models.ReadingPosition{}}
}

func (f *fakeReaderPrefs) Settings(context.Context) (models.ReaderSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, f.settingsErr
}

func (f *fakeReaderPrefs) SaveFontSize(_ context.Context, v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings.FontSize = v
	return nil
}

func (f *fakeReaderPrefs) SaveLineHeight(_ context.Context, v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings.LineHeight = v
	return nil
}

func (f *fakeReaderPrefs) Position(_ context.Context, path string) (models.ReadingPosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.positions[path], nil
}

func (f *fakeReaderPrefs) SavePosition(_ context.Context, path string, pos models.ReadingPosition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.positions[path] = pos
	return nil
}
