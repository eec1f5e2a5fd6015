package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophshelf/internal/flagx"
	"github.com/dmitrijs2005/gophshelf/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	StorageBackend          string         `json:"storage_backend"`
	S3AccessKey             string         `json:"s3_access_key"`
	S3SecretKey             string         `json:"s3_secret_key"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	AzureConnectionString   string         `json:"azure_connection_string"`
	AzureContainer          string         `json:"azure_container"`
	LocalDBPath             string         `json:"local_db_path"`
	CacheDir                string         `json:"cache_dir"`
	LogFormat               string         `json:"log_format"`
	LogLevel                string         `json:"log_level"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Nothing happens when neither flag is given. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.SecretKey, jc.SecretKey)
	if jc.SessionValidityDuration.Duration > 0 {
		cfg.SessionValidityDuration = jc.SessionValidityDuration.Duration
	}
	overlay(&cfg.StorageBackend, jc.StorageBackend)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlay(&cfg.AzureConnectionString, jc.AzureConnectionString)
	overlay(&cfg.AzureContainer, jc.AzureContainer)
	overlay(&cfg.LocalDBPath, jc.LocalDBPath)
	overlay(&cfg.CacheDir, jc.CacheDir)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.LogLevel, jc.LogLevel)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
