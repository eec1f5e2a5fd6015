package viewmodels

import (
	"errors"

	"github.com/dmitrijs2005/gophshelf/internal/common"
)

// ErrorMessage renders a domain error for display.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var unknown *common.UnknownError
	switch {
	case errors.Is(err, common.ErrProfileSaveFailed):
		return "Failed to save the profile."
	case errors.Is(err, common.ErrNetwork):
		return "Network problem. Check your connection."
	case errors.Is(err, common.ErrPermissionDenied):
		return "No permission to access files."
	case errors.Is(err, common.ErrSaveFailed):
		return "Could not save the file."
	case errors.Is(err, common.ErrFileNotFound):
		return "File not found."
	case errors.Is(err, common.ErrNotAuthorized):
		return "User is not signed in."
	case errors.Is(err, common.ErrNotFound):
		return "Profile data not found."
	case errors.Is(err, common.ErrInvalidName):
		return "First and last name must not be empty."
	case errors.Is(err, common.ErrUploadFailed):
		return "Could not upload the image. Try again."
	case errors.Is(err, common.ErrUserAlreadyExists), errors.Is(err, common.ErrUserCollision):
		return "An account with this email already exists."
	case errors.Is(err, common.ErrWeakPassword):
		return "Password is too weak."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrFileUploadFailed):
		return "Could not upload the book file."
	case errors.Is(err, common.ErrMetadataSaveFailed):
		return "The file was uploaded but its details were not saved."
	case errors.As(err, &unknown):
		return unknown.Error()
	default:
		return err.Error()
	}
}
