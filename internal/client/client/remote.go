package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophshelf/internal/client/config"
	"github.com/dmitrijs2005/gophshelf/internal/dbx"
	"github.com/dmitrijs2005/gophshelf/internal/remote/migrations"
	"github.com/dmitrijs2005/gophshelf/internal/remote/objectstore"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenRemote opens the accounts and documents database. No connection is
// made until first use, so the client starts while the server is down.
func OpenRemote(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open remote db: %w", err)
	}
	return db, nil
}

// MigrateRemote applies the account and document schema to db.
func MigrateRemote(ctx context.Context, db *sql.DB) error {
	if err := dbx.Migrate(ctx, db, migrations.Migrations, "pgx"); err != nil {
		return fmt.Errorf("migrate remote db: %w", err)
	}
	return nil
}

// newS3Client and newAzureClient are test seams.
var (
	newS3Client    = objectstore.NewS3Client
	newAzureClient = func(conn string) (objectstore.AzureAPI, error) { return objectstore.NewAzureClient(conn) }
)

// NewObjectStore builds the book and avatar store for cfg.StorageBackend.
func NewObjectStore(ctx context.Context, cfg *config.Config) (objectstore.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		c, err := newS3Client(ctx, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Region, cfg.S3BaseEndpoint)
		if err != nil {
			return nil, err
		}
		return objectstore.NewS3Store(c, cfg.S3Bucket, cfg.S3BaseEndpoint), nil

	case config.BackendAzure:
		c, err := newAzureClient(cfg.AzureConnectionString)
		if err != nil {
			return nil, err
		}
		return objectstore.NewAzureStore(c, cfg.AzureContainer), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StorageBackend)
	}
}
