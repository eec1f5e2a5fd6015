// Package objectstore stores book files and avatars as objects addressed by
// key. Implementations exist for S3-compatible services and Azure Blob
// Storage. Public object URLs have the shape <endpoint>/<bucket>/<key>.
package objectstore

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"slices"
	"strings"
)

var (
	ErrNotFound         = errors.New("object not found")
	ErrPermissionDenied = errors.New("object access denied")
	ErrUnavailable      = errors.New("object store unavailable")
	ErrEmptyKey         = errors.New("object key must not be empty")
	ErrInvalidKey       = errors.New("object key contains invalid path segment")
)

// Store is the object store used by the repositories.
type Store interface {
	// Put uploads size bytes from body under key. Bodies implementing
	// io.Seeker may be rewound by the transport.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Get opens the object for reading. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// URL returns the public URL of key.
	URL(key string) string

	// KeyFromURL recovers the object key from a URL produced by URL.
	KeyFromURL(url string) string
}

// JoinURL builds <endpoint>/<bucket>/<key>.
func JoinURL(endpoint, bucket, key string) string {
	return strings.TrimRight(endpoint, "/") + "/" + bucket + "/" + key
}

// KeyFromURL strips any query string and returns the part after
// "<bucket>/". A URL without that marker is returned unchanged.
func KeyFromURL(url, bucket string) string {
	url, _, _ = strings.Cut(url, "?")
	if _, key, ok := strings.Cut(url, bucket+"/"); ok {
		return key
	}
	return url
}

// ContentType guesses the MIME type of name from its extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if slices.Contains(strings.Split(key, "/"), "..") {
		return ErrInvalidKey
	}
	return nil
}
