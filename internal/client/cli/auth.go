package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophshelf/internal/client/viewmodels"
	"github.com/dmitrijs2005/gophshelf/internal/cryptox"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates the account
// together with its profile. Field errors are printed one per line.
func (a *App) Register(ctx context.Context) error {
	var f viewmodels.RegisterForm
	var err error

	if f.FirstName, err = getSimpleText(a.in, "Enter first name", a.out); err != nil {
		return err
	}
	if f.LastName, err = getSimpleText(a.in, "Enter last name", a.out); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(a.in, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)
	f.Password = string(password)

	a.register.Register(ctx, f)
	a.register.Wait()

	s := a.register.State()
	for _, msg := range []string{s.FirstNameError, s.LastNameError, s.EmailError, s.PasswordError} {
		if msg != "" {
			fmt.Fprintln(a.out, msg)
		}
	}
	switch s.Status {
	case viewmodels.StatusError:
		fmt.Fprintln(a.out, s.Error)
		a.register.ClearError()
	case viewmodels.StatusSuccess:
		fmt.Fprintln(a.out, "Account created. Welcome!")
		return a.List(ctx)
	}
	return nil
}

// Login prompts for credentials and signs in. On success the library is
// listed.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	a.login.Login(ctx, email, string(password))
	a.login.Wait()

	s := a.login.State()
	for _, msg := range []string{s.EmailError, s.PasswordError} {
		if msg != "" {
			fmt.Fprintln(a.out, msg)
		}
	}
	switch s.Status {
	case viewmodels.StatusError:
		fmt.Fprintln(a.out, s.Error)
		a.login.ResetError()
	case viewmodels.StatusSuccess:
		a.log.Info(ctx, "login successful")
		fmt.Fprintln(a.out, "Login successful")
		return a.List(ctx)
	}
	return nil
}

// Logout ends the session and closes the open book.
func (a *App) Logout(ctx context.Context) error {
	a.profile.SignOut(ctx)
	a.profile.Wait()

	select {
	case d := <-a.profile.Effects():
		if d == viewmodels.DestinationLogin {
			a.reading = nil
			fmt.Fprintln(a.out, "Signed out.")
		}
	default:
		if err := a.profile.State().Error; err != nil {
			a.profile.ErrorConsumed()
			return errors.New(viewmodels.ErrorMessage(err))
		}
	}
	return nil
}
