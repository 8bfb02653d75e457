// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // DODESK_DATABASE_URL (required)
	HTTPAddr    string // DODESK_HTTP_ADDR (default ":8080")
	NATSURL     string // DODESK_NATS_URL (optional, empty = no events)
	AuthToken   string // DODESK_AUTH_TOKEN (optional, empty = auth disabled)

	// Snapshot settings
	SnapshotInterval   time.Duration // DODESK_SNAPSHOT_INTERVAL (default 3m; 0 = disabled)
	SnapshotS3Bucket   string        // DODESK_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // DODESK_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // DODESK_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // DODESK_SNAPSHOT_S3_KEY (default "dodesk/backup.jsonl")
	SnapshotGitRepo    string        // DODESK_SNAPSHOT_GIT_REPO (enables git when set; path to clone)
	SnapshotGitFile    string        // DODESK_SNAPSHOT_GIT_FILE (default "dodesk.jsonl")
	SnapshotGitBranch  string        // DODESK_SNAPSHOT_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("DODESK_DATABASE_URL"),
		HTTPAddr:           envOrDefault("DODESK_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("DODESK_NATS_URL"),
		AuthToken:          os.Getenv("DODESK_AUTH_TOKEN"),
		SnapshotS3Bucket:   os.Getenv("DODESK_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("DODESK_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("DODESK_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("DODESK_SNAPSHOT_S3_KEY", "dodesk/backup.jsonl"),
		SnapshotGitRepo:    os.Getenv("DODESK_SNAPSHOT_GIT_REPO"),
		SnapshotGitFile:    envOrDefault("DODESK_SNAPSHOT_GIT_FILE", "dodesk.jsonl"),
		SnapshotGitBranch:  envOrDefault("DODESK_SNAPSHOT_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("DODESK_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("DODESK_SNAPSHOT_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("DODESK_SNAPSHOT_INTERVAL: %w", err)
		}
		c.SnapshotInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
