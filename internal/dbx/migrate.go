package dbx

import (
	"context"
	"database/sql"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending goose migration found at the root of fsys.
// dialect is a goose dialect name such as "sqlite3" or "pgx".
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
