package viewmodels

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gophshelf/internal/client/services"
	"github.com/dmitrijs2005/gophshelf/internal/client/state"
)

type ProfileState struct {
	Loading   bool
	Editing   bool
	FirstName string
	LastName  string
	Email     string
	Phone     string
	PhotoURL  string
	// Error is a profile domain error; render it with ErrorMessage.
	Error error
}

// ProfileViewModel drives the profile screen. SignedOut is signalled once
// on Effects after a successful sign-out.
type ProfileViewModel struct {
	svc     services.ProfileService
	state   *state.Store[ProfileState]
	effects chan Destination
	job     job
}

func NewProfileViewModel(svc services.ProfileService) *ProfileViewModel {
	return &ProfileViewModel{
		svc:     svc,
		state:   state.NewStore(ProfileState{}),
		effects: make(chan Destination, 1),
	}
}

func (vm *ProfileViewModel) State() ProfileState { return vm.state.Get() }

func (vm *ProfileViewModel) Subscribe(ctx context.Context) <-chan ProfileState {
	return vm.state.Subscribe(ctx)
}

// Effects delivers navigation requests, DestinationLogin after sign-out.
func (vm *ProfileViewModel) Effects() <-chan Destination { return vm.effects }

func (vm *ProfileViewModel) Load(ctx context.Context) {
	vm.setLoading(true)
	vm.job.launch(ctx, func(ctx context.Context) func() {
		return vm.fetch(ctx, nil)
	})
}

func (vm *ProfileViewModel) ChangeFirstName(v string) {
	vm.state.Update(func(s ProfileState) ProfileState { s.FirstName = v; return s })
}

func (vm *ProfileViewModel) ChangeLastName(v string) {
	vm.state.Update(func(s ProfileState) ProfileState { s.LastName = v; return s })
}

func (vm *ProfileViewModel) ToggleEdit() {
	vm.state.Update(func(s ProfileState) ProfileState { s.Editing = !s.Editing; return s })
}

func (vm *ProfileViewModel) ErrorConsumed() {
	vm.state.Update(func(s ProfileState) ProfileState { s.Error = nil; return s })
}

// SaveName stores the edited name, reloads the profile and leaves edit mode.
func (vm *ProfileViewModel) SaveName(ctx context.Context) {
	cur := vm.state.Get()
	vm.job.launch(ctx, func(ctx context.Context) func() {
		if err := vm.svc.UpdateName(ctx, cur.FirstName, cur.LastName); err != nil {
			return vm.fail(err)
		}
		return vm.fetch(ctx, func(s *ProfileState) { s.Editing = false })
	})
}

// UpdatePhoto uploads src as the new avatar. The caller keeps src open
// until Wait returns.
func (vm *ProfileViewModel) UpdatePhoto(ctx context.Context, src io.Reader) {
	vm.setLoading(true)
	vm.job.launch(ctx, func(ctx context.Context) func() {
		url, err := vm.svc.UpdatePhoto(ctx, src)
		if err != nil {
			return vm.fail(err)
		}
		return func() {
			vm.state.Update(func(s ProfileState) ProfileState {
				s.Loading, s.PhotoURL = false, url
				return s
			})
		}
	})
}

// DownloadPhoto fetches the current avatar.
func (vm *ProfileViewModel) DownloadPhoto(ctx context.Context) ([]byte, error) {
	return vm.svc.DownloadPhoto(ctx, vm.state.Get().PhotoURL)
}

func (vm *ProfileViewModel) SignOut(ctx context.Context) {
	vm.job.launch(ctx, func(ctx context.Context) func() {
		err := vm.svc.SignOut(ctx)
		if err != nil {
			return vm.fail(err)
		}
		return func() {
			vm.state.Set(ProfileState{})
			select {
			case vm.effects <- DestinationLogin:
			default:
			}
		}
	})
}

func (vm *ProfileViewModel) Wait() { vm.job.wait() }

func (vm *ProfileViewModel) fetch(ctx context.Context, after func(*ProfileState)) func() {
	p, err := vm.svc.GetProfile(ctx)
	if err != nil {
		return vm.fail(err)
	}
	return func() {
		vm.state.Update(func(s ProfileState) ProfileState {
			s.Loading = false
			s.FirstName, s.LastName = p.FirstName, p.LastName
			s.Email, s.Phone, s.PhotoURL = p.Email, p.Phone, p.PhotoURL
			if after != nil {
				after(&s)
			}
			return s
		})
	}
}

func (vm *ProfileViewModel) fail(err error) func() {
	return func() {
		vm.state.Update(func(s ProfileState) ProfileState {
			s.Loading, s.Error = false, err
			return s
		})
	}
}

func (vm *ProfileViewModel) setLoading(v bool) {
	vm.state.Update(func(s ProfileState) ProfileState { s.Loading = v; return s })
}
