package docstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophshelf/internal/dbx"
	"github.com/google/uuid"
)

// PostgresStore keeps documents in the documents table as jsonb.
type PostgresStore struct {
	db dbx.DBTX
}

func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	query :=
		`INSERT INTO documents (collection, id, data)
		 VALUES ($1, $2, $3::jsonb)
		 `

	if _, err := s.db.ExecContext(ctx, query, collection, id, string(payload)); err != nil {
		return "", classify(err)
	}
	return id, nil
}

func (s *PostgresStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	update := `data = EXCLUDED.data`
	if merge {
		update = `data = documents.data || EXCLUDED.data`
	}

	query :=
		`INSERT INTO documents (collection, id, data)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, id) DO UPDATE SET ` + update

	if _, err := s.db.ExecContext(ctx, query, collection, id, string(payload)); err != nil {
		return classify(err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	query :=
		`SELECT id, data, created_at FROM documents
		 WHERE collection = $1 AND id = $2
		 `

	var raw []byte
	doc := &Document{}
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&doc.ID, &raw, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify(err)
	}

	if doc.Data, err = decode(raw); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	query :=
		`SELECT id, data, created_at FROM documents
		 WHERE collection = $1
		 ORDER BY created_at, id
		 `

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var raw []byte
		var doc Document
		if err := rows.Scan(&doc.ID, &raw, &doc.CreatedAt); err != nil {
			return nil, classify(err)
		}
		if doc.Data, err = decode(raw); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return docs, nil
}

func decode(raw []byte) (map[string]any, error) {
	data := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return data, nil
}

func classify(err error) error {
	switch {
	case dbx.IsUnavailable(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case dbx.PgCode(err) == "42501":
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
