package viewmodels

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophshelf/internal/client/models"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/auth"
	"github.com/dmitrijs2005/gophshelf/internal/client/services"
	"github.com/dmitrijs2005/gophshelf/internal/client/state"
)

const (
	MsgFillAllFields = "Fill in all fields"
	MsgNotSignedIn   = "Error: user is not signed in"
)

type UploadState struct {
	Loading bool
	// Progress is the transferred fraction in [0, 1].
	Progress float64
	Success  bool
	Error    string
}

type UploadViewModel struct {
	svc   services.UploadBookService
	auth  auth.Repository
	state *state.Store[UploadState]
	job   job
}

func NewUploadViewModel(svc services.UploadBookService, a auth.Repository) *UploadViewModel {
	return &UploadViewModel{svc: svc, auth: a, state: state.NewStore(UploadState{})}
}

func (vm *UploadViewModel) State() UploadState { return vm.state.Get() }

func (vm *UploadViewModel) Subscribe(ctx context.Context) <-chan UploadState {
	return vm.state.Subscribe(ctx)
}

// Upload starts uploading src, cancelling any upload in progress. The
// caller keeps src open until Wait returns.
func (vm *UploadViewModel) Upload(ctx context.Context, title, author, fileName string, src io.Reader) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" || fileName == "" || src == nil {
		vm.state.Update(func(s UploadState) UploadState {
			s.Error = MsgFillAllFields
			return s
		})
		return
	}

	uid, ok := vm.auth.CurrentUserID()
	if !ok {
		vm.state.Update(func(s UploadState) UploadState {
			s.Error = MsgNotSignedIn
			return s
		})
		return
	}

	vm.state.Set(UploadState{Loading: true})
	vm.job.launch(ctx, func(ctx context.Context) func() {
		err := vm.svc.Upload(ctx, models.UploadRequest{
			UserID:   uid,
			Title:    title,
			Author:   author,
			Source:   src,
			FileName: fileName,
			OnProgress: func(f float64) {
				if ctx.Err() != nil {
					return
				}
				vm.state.Update(func(s UploadState) UploadState {
					if s.Loading {
						s.Progress = f
					}
					return s
				})
			},
		})
		return func() {
			if err != nil {
				vm.state.Set(UploadState{Error: ErrorMessage(err)})
				return
			}
			vm.state.Set(UploadState{Progress: 1, Success: true})
		}
	})
}

func (vm *UploadViewModel) ResetState() {
	vm.job.stop()
	vm.state.Set(UploadState{})
}

func (vm *UploadViewModel) ClearError() {
	vm.state.Update(func(s UploadState) UploadState {
		s.Error = ""
		return s
	})
}

func (vm *UploadViewModel) Wait() { vm.job.wait() }
