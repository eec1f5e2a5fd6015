// Package models defines client-side data models used by the GophShelf CLI.
package models

import (
	"io"
	"strings"
)

// Book is one library entry: remote metadata plus local cache state.
type Book struct {
	// ID is the document key of the metadata record.
	ID     string
	Title  string
	Author string

	// FileURL is the public object-store URL of the book file.
	FileURL string

	// StorageKey is the object key derived from FileURL.
	StorageKey string

	// Extension is the lowercase-agnostic file extension without the dot.
	Extension string

	// LocalPath is the cached copy, empty when the book is not downloaded.
	LocalPath    string
	IsDownloaded bool

	// DateAdded is the creation time in Unix milliseconds.
	DateAdded int64
}

// Matches reports whether the book title or author contains query,
// ignoring case. An empty query matches every book.
func (b Book) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q)
}

// UploadRequest carries one book upload through the pipeline.
type UploadRequest struct {
	UserID   string
	Title    string
	Author   string
	Source   io.Reader
	FileName string

	// OnProgress, when set, receives the transferred fraction in [0, 1].
	OnProgress func(fraction float64)
}
