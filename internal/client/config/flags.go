package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophshelf/internal/flagx"
)

// parseFlags populates Config fields from command-line flags (see package
// doc for the list). Only known flags are taken from os.Args, via
// flagx.FilterArgs. Session validity is given in minutes.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-d", "-s", "-t", "-k", "-u", "-p", "-b", "-g", "-e", "-z", "-n", "-l", "-f", "-o", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "session signing key")
	sessionValidity := fs.Int("t", int(cfg.SessionValidityDuration.Minutes()), "session validity (in minutes)")

	fs.StringVar(&cfg.StorageBackend, "k", cfg.StorageBackend, "object store backend (s3|azure)")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.AzureConnectionString, "z", cfg.AzureConnectionString, "Azure storage connection string")
	fs.StringVar(&cfg.AzureContainer, "n", cfg.AzureContainer, "Azure container")

	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "local database path")
	fs.StringVar(&cfg.CacheDir, "f", cfg.CacheDir, "book cache directory")
	fs.StringVar(&cfg.LogFormat, "o", cfg.LogFormat, "log format (text|json|console)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
}
