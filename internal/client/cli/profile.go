package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophshelf/internal/client/viewmodels"
	"github.com/dmitrijs2005/gophshelf/internal/common"
	"github.com/dmitrijs2005/gophshelf/internal/filex"
)

// Profile loads and prints the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	a.profile.Load(ctx)
	a.profile.Wait()
	if err := a.profileError(); err != nil {
		return err
	}

	s := a.profile.State()
	fmt.Fprintf(a.out, "First name: %s\n", s.FirstName)
	fmt.Fprintf(a.out, "Last name:  %s\n", s.LastName)
	fmt.Fprintf(a.out, "Email:      %s\n", s.Email)
	if s.Phone != "" {
		fmt.Fprintf(a.out, "Phone:      %s\n", s.Phone)
	}
	photo := s.PhotoURL
	if photo == "" {
		photo = "(none)"
	}
	fmt.Fprintf(a.out, "Photo:      %s\n", photo)
	return nil
}

// SetName switches the profile into edit mode, prompts for both names and
// saves them. An empty answer keeps the current value.
func (a *App) SetName(ctx context.Context) error {
	if err := a.Profile(ctx); err != nil {
		return err
	}
	a.profile.ToggleEdit()
	cur := a.profile.State()

	first, err := getSimpleText(a.in, fmt.Sprintf("Enter first name [%s]", cur.FirstName), a.out)
	if err != nil {
		a.profile.ToggleEdit()
		return err
	}
	last, err := getSimpleText(a.in, fmt.Sprintf("Enter last name [%s]", cur.LastName), a.out)
	if err != nil {
		a.profile.ToggleEdit()
		return err
	}
	if first != "" {
		a.profile.ChangeFirstName(first)
	}
	if last != "" {
		a.profile.ChangeLastName(last)
	}

	a.profile.SaveName(ctx)
	a.profile.Wait()
	if err := a.profileError(); err != nil {
		a.profile.ToggleEdit()
		return err
	}
	s := a.profile.State()
	fmt.Fprintf(a.out, "Name saved: %s %s\n", s.FirstName, s.LastName)
	return nil
}

// SetPhoto uploads an image file as the new avatar.
func (a *App) SetPhoto(ctx context.Context) error {
	path, err := getSimpleText(a.in, "Enter path to the image", a.out)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	a.profile.UpdatePhoto(ctx, f)
	a.profile.Wait()
	if err := a.profileError(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Photo updated")
	return nil
}

// SaveAvatar downloads the current avatar into a local file.
func (a *App) SaveAvatar(ctx context.Context) error {
	if a.profile.State().PhotoURL == "" {
		a.profile.Load(ctx)
		a.profile.Wait()
		if err := a.profileError(); err != nil {
			return err
		}
	}

	data, err := a.profile.DownloadPhoto(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "No avatar uploaded yet.")
			return nil
		}
		return errors.New(viewmodels.ErrorMessage(err))
	}

	path, err := getSimpleText(a.in, fmt.Sprintf("Save avatar to [%s]", common.AvatarFileName), a.out)
	if err != nil {
		return err
	}
	if path == "" {
		path = common.AvatarFileName
	}
	n, err := filex.WriteAtomic(ctx, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", n, path)
	return nil
}

// profileError reports and consumes the profile view-model error.
func (a *App) profileError() error {
	err := a.profile.State().Error
	if err == nil {
		return nil
	}
	a.profile.ErrorConsumed()
	return errors.New(viewmodels.ErrorMessage(err))
}
