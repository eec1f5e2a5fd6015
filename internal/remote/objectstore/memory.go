package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"sync"
)

// MemoryStore is an in-process Store with URLs rooted at Endpoint/Bucket.
type MemoryStore struct {
	Endpoint string
	Bucket   string

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore(endpoint, bucket string) *MemoryStore {
	return &MemoryStore{Endpoint: endpoint, Bucket: bucket, objects: map[string][]byte{}}
}

func (m *MemoryStore) Put(ctx context.Context, key string, body io.Reader, _ int64, _ string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryStore) URL(key string) string {
	return JoinURL(m.Endpoint, m.Bucket, key)
}

func (m *MemoryStore) KeyFromURL(url string) string {
	return KeyFromURL(url, m.Bucket)
}

// Objects returns a copy of the stored objects.
func (m *MemoryStore) Objects() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.objects)
}
