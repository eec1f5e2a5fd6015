// Package prefs stores local key-value preferences: reader typography,
// per-file reading positions and the identity session token.
package prefs

import (
	"context"
)

// Repository is a byte-valued key-value store. Get returns (nil, nil) for
// absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
