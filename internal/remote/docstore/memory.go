package docstore

import (
	"context"
	"encoding/json"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store. Values are round-tripped through JSON
// so callers observe the same types as with PostgresStore.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]map[string]Document
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]map[string]Document{}, now: time.Now}
}

func (m *MemoryStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	return id, m.Set(ctx, collection, id, data, false)
}

func (m *MemoryStore) Set(_ context.Context, collection, id string, data map[string]any, merge bool) error {
	normalized, err := normalize(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.docs[collection]
	if !ok {
		coll = map[string]Document{}
		m.docs[collection] = coll
	}

	doc, exists := coll[id]
	if !exists {
		doc = Document{ID: id, Data: map[string]any{}, CreatedAt: m.now()}
	}
	if merge && exists {
		merged := maps.Clone(doc.Data)
		maps.Copy(merged, normalized)
		doc.Data = merged
	} else {
		doc.Data = normalized
	}
	coll[id] = doc
	return nil
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	doc.Data = maps.Clone(doc.Data)
	return &doc, nil
}

func (m *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := make([]Document, 0, len(m.docs[collection]))
	for _, d := range m.docs[collection] {
		d.Data = maps.Clone(d.Data)
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

func normalize(data map[string]any) (map[string]any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return decode(b)
}
