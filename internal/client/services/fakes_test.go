package services

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
)

type fakeRaw struct {
	url      string
	err      error
	calls    int
	fileName string
}

func (f *fakeRaw) UploadFile(_ context.Context, _ io.Reader, fileName string, onProgress func(float64)) (string, error) {
	f.calls++
	f.fileName = fileName
	if f.err != nil {
		return "", f.err
	}
	if onProgress != nil {
		onProgress(1)
	}
	return f.url, nil
}

type fakeMeta struct {
	err   error
	calls int
	saved []string
}

func (f *fakeMeta) ListBooks(context.Context) ([]models.Book, error) { return nil, nil }
func (f *fakeMeta) DownloadBook(_ context.Context, b models.Book) (models.Book, error) {
	return b, nil
}
func (f *fakeMeta) DeleteBook(_ context.Context, b models.Book) (models.Book, error) {
	return b, nil
}
func (f *fakeMeta) UploadMeta(_ context.Context, userID, title, author, fileURL string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, userID, title, author, fileURL)
	return nil
}

type fakeAuth struct {
	registerErr error
	uid         string
	registered  bool
}

func (f *fakeAuth) Login(context.Context, string, string) error { return nil }
func (f *fakeAuth) Register(context.Context, string, string) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = true
	return nil
}
func (f *fakeAuth) IsUserAuth() (bool, error) { return f.registered, nil }
func (f *fakeAuth) CurrentUserID() (string, bool) {
	if !f.registered || f.uid == "" {
		return "", false
	}
	return f.uid, true
}

type fakeProfiles struct {
	err   error
	calls [][3]string
}

func (f *fakeProfiles) CreateUserProfile(_ context.Context, uid, first, last string) error {
	f.calls = append(f.calls, [3]string{uid, first, last})
	return f.err
}

type fakeSession struct {
	uid       string
	email     string
	phone     string
	signedOut bool
}

func (f *fakeSession) UserID() (string, bool) { return f.uid, f.uid != "" }
func (f *fakeSession) Email() string          { return f.email }
func (f *fakeSession) Phone() string          { return f.phone }
func (f *fakeSession) SignOut(context.Context) error {
	f.uid = ""
	f.signedOut = true
	return nil
}

type fakeUsers struct {
	mu        sync.Mutex
	profile   models.UserProfile
	err       error
	updateErr error
	reads     int
	updated   []string
	// gate, when set, holds GetUserInfo until it is closed.
	gate chan struct{}
}

func (f *fakeUsers) GetUserInfo(ctx context.Context, uid string) (models.UserProfile, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return models.UserProfile{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return models.UserProfile{}, f.err
	}
	p := f.profile
	p.UserID = uid
	return p, nil
}

func (f *fakeUsers) UpdateUserName(_ context.Context, uid, first, last string) error {
	f.updated = append(f.updated, uid, first, last)
	return f.updateErr
}

type fakeImages struct {
	mu     sync.Mutex
	url    string
	err    error
	setErr error
	reads  int
	set    map[string]string
}

func (f *fakeImages) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeImages) GetUserImage(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.url, f.err
}

func (f *fakeImages) SetUserImage(_ context.Context, uid, url string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.set == nil {
		f.set = map[string]string{}
	}
	f.set[uid] = url
	return nil
}

type fakePhotos struct {
	url       string
	err       error
	fileName  string
	data      []byte
	requested string
}

func (f *fakePhotos) UploadImage(_ context.Context, src io.Reader, fileName string) (string, error) {
	f.fileName = fileName
	if f.err != nil {
		return "", f.err
	}
	f.data, _ = io.ReadAll(src)
	return f.url, nil
}

func (f *fakePhotos) DownloadImage(_ context.Context, key string) ([]byte, error) {
	f.requested = key
	return f.data, f.err
}
