// Package config loads server settings from JOBLY_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // JOBLY_DATABASE_URL (required)
	GRPCAddr    string // JOBLY_GRPC_ADDR (default ":9090")
	HTTPAddr    string // JOBLY_HTTP_ADDR (default ":8080")
	NATSURL     string // JOBLY_NATS_URL (optional, empty = no events)
	AdminToken  string // JOBLY_ADMIN_TOKEN (optional, empty = admin guard disabled)

	// Snapshot sync settings
	SyncInterval   time.Duration // JOBLY_SYNC_INTERVAL (default 0 = disabled)
	SyncS3Bucket   string        // JOBLY_SYNC_S3_BUCKET (required when sync is enabled)
	SyncS3Endpoint string        // JOBLY_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // JOBLY_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // JOBLY_SYNC_S3_KEY (default "jobly/backup.jsonl"; "{timestamp}" expands per snapshot)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("JOBLY_DATABASE_URL"),
		GRPCAddr:       envOrDefault("JOBLY_GRPC_ADDR", ":9090"),
		HTTPAddr:       envOrDefault("JOBLY_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("JOBLY_NATS_URL"),
		AdminToken:     os.Getenv("JOBLY_ADMIN_TOKEN"),
		SyncS3Bucket:   os.Getenv("JOBLY_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("JOBLY_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("JOBLY_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("JOBLY_SYNC_S3_KEY", "jobly/backup.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("JOBLY_DATABASE_URL is required")
	}

	d, err := time.ParseDuration(envOrDefault("JOBLY_SYNC_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("JOBLY_SYNC_INTERVAL: %w", err)
	}
	if d < 0 {
		return nil, fmt.Errorf("JOBLY_SYNC_INTERVAL must not be negative, got %s", d)
	}
	c.SyncInterval = d

	if c.SyncInterval > 0 && c.SyncS3Bucket == "" {
		return nil, fmt.Errorf("JOBLY_SYNC_S3_BUCKET is required when JOBLY_SYNC_INTERVAL is set")
	}

	return c, nil
}

// SyncEnabled reports whether periodic snapshot uploads should run.
func (c *Config) SyncEnabled() bool {
	return c.SyncInterval > 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
