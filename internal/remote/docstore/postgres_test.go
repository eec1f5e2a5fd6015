package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock, db
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+documents\s*\(collection,\s*id,\s*data\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3::jsonb\)\s*$`
	mergeQ  = `(?s)^INSERT\s+INTO\s+documents.*ON\s+CONFLICT\s+\(collection,\s*id\)\s+DO\s+UPDATE\s+SET\s+data\s*=\s*documents\.data\s*\|\|\s*EXCLUDED\.data$`
	setQ    = `(?s)^INSERT\s+INTO\s+documents.*ON\s+CONFLICT\s+\(collection,\s*id\)\s+DO\s+UPDATE\s+SET\s+data\s*=\s*EXCLUDED\.data$`
	getQ    = `(?s)^SELECT\s+id,\s*data,\s*created_at\s+FROM\s+documents\s+WHERE\s+collection\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s*$`
	listQ   = `(?s)^SELECT\s+id,\s*data,\s*created_at\s+FROM\s+documents\s+WHERE\s+collection\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id\s*$`
)

func TestAdd_GeneratesID(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectExec(insertQ).
		WithArgs("books", sqlmock.AnyArg(), `{"title":"Dune"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Add(context.Background(), "books", map[string]any{"title": "Dune"})
	require.NoError(t, err)
	assert.Len(t, id, 36)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_Unavailable(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectExec(insertQ).
		WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	_, err := s.Add(context.Background(), "books", map[string]any{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSet_MergeAndReplace(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(mergeQ).
		WithArgs("image", "u1", `{"fileUrl":"http://x/a.jpg"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(setQ).
		WithArgs("users", "u1", `{"firstName":"Ada"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(ctx, "image", "u1", map[string]any{"fileUrl": "http://x/a.jpg"}, true))
	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"firstName": "Ada"}, false))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_PermissionDenied(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectExec(mergeQ).WillReturnError(&pgconn.PgError{Code: "42501", Message: "permission denied"})

	err := s.Set(context.Background(), "users", "u1", map[string]any{"a": 1}, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestGet_Found(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(getQ).
		WithArgs("books", "b1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data", "created_at"}).
			AddRow("b1", []byte(`{"title":"Dune","dateAdded":1704164645000}`), created))

	doc, err := s.Get(context.Background(), "books", "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", doc.ID)
	assert.Equal(t, "Dune", doc.String("title"))
	assert.Equal(t, created, doc.CreatedAt)

	ms, ok := doc.Int64("dateAdded")
	require.True(t, ok)
	assert.Equal(t, int64(1704164645000), ms)
}

func TestGet_NotFound(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectQuery(getQ).WithArgs("users", "nope").WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "users", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_OtherError(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectQuery(getQ).WillReturnError(errors.New("boom"))

	_, err := s.Get(context.Background(), "users", "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "db error: boom")
}

func TestList_Ordered(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)
	now := time.Now()

	mock.ExpectQuery(listQ).
		WithArgs("books").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data", "created_at"}).
			AddRow("b1", []byte(`{"title":"A"}`), now).
			AddRow("b2", []byte(`{"title":"B"}`), now.Add(time.Second)))

	docs, err := s.List(context.Background(), "books")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b1", docs[0].ID)
	assert.Equal(t, "B", docs[1].String("title"))
}

func TestList_BadJSON(t *testing.T) {
	s, mock, _ := newStoreWithMock(t)

	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data", "created_at"}).
			AddRow("b1", []byte(`{not json`), time.Now()))

	_, err := s.List(context.Background(), "books")
	assert.ErrorContains(t, err, "decode document")
}

func TestDocument_Accessors(t *testing.T) {
	d := Document{Data: map[string]any{
		"s": "x", "n": json.Number("12"), "f": 3.0, "bad": "1", "frac": json.Number("1.5"),
	}}

	assert.Equal(t, "x", d.String("s"))
	assert.Equal(t, "", d.String("n"))
	assert.Equal(t, "", d.String("missing"))

	n, ok := d.Int64("n")
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	f, ok := d.Int64("f")
	assert.True(t, ok)
	assert.Equal(t, int64(3), f)

	fr, ok := d.Int64("frac")
	assert.True(t, ok)
	assert.Equal(t, int64(1), fr)

	_, ok = d.Int64("bad")
	assert.False(t, ok)
}
