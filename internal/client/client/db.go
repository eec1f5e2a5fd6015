package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophshelf/internal/client/migrations"
	"github.com/dmitrijs2005/gophshelf/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/gophshelf/internal/dbx"

	_ "modernc.org/sqlite"
)

// Repositories are the local stores backed by the SQLite database.
type Repositories struct {
	Prefs   prefs.Repository
	Reader  prefs.ReaderSettingsRepository
	Session *prefs.SessionStore
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	return dbx.Migrate(ctx, db, migrations.Migrations, "sqlite3")
}

// InitDatabase opens the SQLite database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local db: %w", err)
	}
	return db, nil
}

func NewRepositories(db *sql.DB) *Repositories {
	kv := prefs.NewSQLiteRepository(db)
	return &Repositories{
		Prefs:   kv,
		Reader:  prefs.NewReaderSettingsRepository(db),
		Session: prefs.NewSessionStore(kv),
	}
}
