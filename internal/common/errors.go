// Package common defines shared constants and sentinel errors used across
// the GophShelf layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Errors shared by repositories and use cases.
	ErrNetwork          = errors.New("network error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrUnknown          = errors.New("unknown error")

	// Book metadata and local cache errors.
	ErrSaveFailed   = errors.New("failed to save file")
	ErrFileNotFound = errors.New("file not found")

	// Raw file transfer errors.
	ErrFileRead     = errors.New("failed to read file")
	ErrUploadFailed = errors.New("upload failed")

	// Upload pipeline errors.
	ErrFileUploadFailed   = errors.New("file upload failed")
	ErrMetadataSaveFailed = errors.New("metadata save failed")

	// Account errors.
	ErrUserCollision      = errors.New("user with this email already exists")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Registration errors.
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrProfileSaveFailed = errors.New("profile save failed")

	// Profile errors.
	ErrInvalidName = errors.New("first and last name must not be empty")
)

// UnknownError is the catch-all member of every domain error set.
// It matches ErrUnknown with errors.Is.
type UnknownError struct {
	Message string
}

// Unknown returns an *UnknownError carrying msg.
func Unknown(msg string) error {
	return &UnknownError{Message: msg}
}

func (e *UnknownError) Error() string {
	if e.Message == "" {
		return ErrUnknown.Error()
	}
	return e.Message
}

func (e *UnknownError) Is(target error) bool {
	return target == ErrUnknown
}

// ProfileSaveFailedError reports that an account was created but its profile
// document could not be written. AccountID identifies the orphaned account.
type ProfileSaveFailedError struct {
	AccountID string
	Err       error
}

func (e *ProfileSaveFailedError) Error() string {
	return fmt.Sprintf("%s (account %s): %v", ErrProfileSaveFailed, e.AccountID, e.Err)
}

func (e *ProfileSaveFailedError) Is(target error) bool {
	return target == ErrProfileSaveFailed
}

func (e *ProfileSaveFailedError) Unwrap() error {
	return e.Err
}
