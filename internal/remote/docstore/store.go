// Package docstore is a collection/document database. Documents are schemaless
// JSON objects addressed by (collection, id); partial updates merge fields
// into the stored object.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrPermissionDenied = errors.New("document access denied")
	ErrUnavailable      = errors.New("document store unavailable")
)

// Store is the document database used by the repositories.
type Store interface {
	// Add stores data under a generated id and returns that id.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)

	// Set writes data under id. With merge, fields are merged into an
	// existing document; otherwise the document is replaced.
	Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error

	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// List returns every document of the collection, oldest first.
	List(ctx context.Context, collection string) ([]Document, error)
}

// Document is one stored JSON object. Numbers are kept as json.Number.
type Document struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
}

// String returns the string field key, or "" when absent or not a string.
func (d Document) String(key string) string {
	s, _ := d.Data[key].(string)
	return s
}

// Int64 returns the numeric field key.
func (d Document) Int64(key string) (int64, bool) {
	switch v := d.Data[key].(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return i, true
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
