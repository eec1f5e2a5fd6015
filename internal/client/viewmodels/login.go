package viewmodels

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/auth"
	"github.com/dmitrijs2005/gophshelf/internal/client/services"
	"github.com/dmitrijs2005/gophshelf/internal/client/state"
	"github.com/dmitrijs2005/gophshelf/internal/remote/identity"
)

// Status is the progress of a form submission.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidPassword reports whether s is long enough to submit.
func ValidPassword(s string) bool { return utf8.RuneCountInString(s) >= identity.MinPasswordLength }

const (
	msgInvalidEmail    = "Invalid email address."
	msgInvalidPassword = "Password must be at least 6 characters."
)

type LoginState struct {
	Status        Status
	EmailError    string
	PasswordError string
	Error         string
}

type LoginViewModel struct {
	auth  auth.Repository
	state *state.Store[LoginState]
	job   job
}

func NewLoginViewModel(a auth.Repository) *LoginViewModel {
	return &LoginViewModel{auth: a, state: state.NewStore(LoginState{})}
}

func (vm *LoginViewModel) State() LoginState { return vm.state.Get() }

func (vm *LoginViewModel) Subscribe(ctx context.Context) <-chan LoginState {
	return vm.state.Subscribe(ctx)
}

// Login validates the input and signs in. Invalid input is reported in the
// field errors and never reaches the repository.
func (vm *LoginViewModel) Login(ctx context.Context, email, password string) {
	email = strings.TrimSpace(email)
	emailOK, passwordOK := ValidEmail(email), ValidPassword(password)
	if !emailOK || !passwordOK {
		vm.state.Update(func(s LoginState) LoginState {
			s.EmailError, s.PasswordError = "", ""
			if !emailOK {
				s.EmailError = msgInvalidEmail
			}
			if !passwordOK {
				s.PasswordError = msgInvalidPassword
			}
			return s
		})
		return
	}

	vm.state.Set(LoginState{Status: StatusLoading})
	vm.job.launch(ctx, func(ctx context.Context) func() {
		err := vm.auth.Login(ctx, email, password)
		return func() {
			if err != nil {
				vm.state.Set(LoginState{Status: StatusError, Error: ErrorMessage(err)})
				return
			}
			vm.state.Set(LoginState{Status: StatusSuccess})
		}
	})
}

// ResetError returns an Error state to Idle once it has been shown.
func (vm *LoginViewModel) ResetError() {
	vm.state.Update(func(s LoginState) LoginState {
		if s.Status == StatusError {
			s.Status, s.Error = StatusIdle, ""
		}
		return s
	})
}

func (vm *LoginViewModel) Wait() { vm.job.wait() }

type RegisterForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type RegisterState struct {
	Status         Status
	FirstNameError string
	LastNameError  string
	EmailError     string
	PasswordError  string
	Error          string
}

type RegisterViewModel struct {
	svc   services.RegisterService
	state *state.Store[RegisterState]
	job   job
}

func NewRegisterViewModel(svc services.RegisterService) *RegisterViewModel {
	return &RegisterViewModel{svc: svc, state: state.NewStore(RegisterState{})}
}

func (vm *RegisterViewModel) State() RegisterState { return vm.state.Get() }

func (vm *RegisterViewModel) Subscribe(ctx context.Context) <-chan RegisterState {
	return vm.state.Subscribe(ctx)
}

func (vm *RegisterViewModel) Register(ctx context.Context, f RegisterForm) {
	f.Email = strings.TrimSpace(f.Email)

	var s RegisterState
	if strings.TrimSpace(f.FirstName) == "" {
		s.FirstNameError = "Enter your first name."
	}
	if strings.TrimSpace(f.LastName) == "" {
		s.LastNameError = "Enter your last name."
	}
	if !ValidEmail(f.Email) {
		s.EmailError = msgInvalidEmail
	}
	if !ValidPassword(f.Password) {
		s.PasswordError = msgInvalidPassword
	}
	if s != (RegisterState{}) {
		vm.state.Set(s)
		return
	}

	vm.state.Set(RegisterState{Status: StatusLoading})
	vm.job.launch(ctx, func(ctx context.Context) func() {
		err := vm.svc.Register(ctx, f.FirstName, f.LastName, f.Email, f.Password)
		return func() {
			if err != nil {
				vm.state.Set(RegisterState{Status: StatusError, Error: ErrorMessage(err)})
				return
			}
			vm.state.Set(RegisterState{Status: StatusSuccess})
		}
	})
}

func (vm *RegisterViewModel) ClearError() {
	vm.state.Update(func(s RegisterState) RegisterState {
		if s.Status == StatusError {
			s.Status, s.Error = StatusIdle, ""
		}
		return s
	})
}

func (vm *RegisterViewModel) Wait() { vm.job.wait() }
