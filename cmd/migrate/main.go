package main

import (
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/gophshelf/internal/buildinfo"
	"github.com/dmitrijs2005/gophshelf/internal/client/client"
	"github.com/dmitrijs2005/gophshelf/internal/client/config"
	"github.com/dmitrijs2005/gophshelf/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := client.OpenRemote(cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "open remote db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := client.MigrateRemote(ctx, db); err != nil {
		logger.Error(ctx, "migration failed", "error", err)
		cancel()
		os.Exit(1)
	}
	logger.Info(ctx, "remote schema is up to date")

}
