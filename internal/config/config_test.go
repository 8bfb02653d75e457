package config

import (
	"testing"
	"time"
)

// snapshotEnvVars lists all snapshot-related env vars that must be cleared between tests.
var snapshotEnvVars = []string{
	"DODESK_SNAPSHOT_INTERVAL", "DODESK_SNAPSHOT_S3_BUCKET", "DODESK_SNAPSHOT_S3_ENDPOINT",
	"DODESK_SNAPSHOT_S3_REGION", "DODESK_SNAPSHOT_S3_KEY", "DODESK_SNAPSHOT_GIT_REPO",
	"DODESK_SNAPSHOT_GIT_FILE", "DODESK_SNAPSHOT_GIT_BRANCH",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DODESK_DATABASE_URL", "DODESK_HTTP_ADDR", "DODESK_NATS_URL", "DODESK_AUTH_TOKEN"} {
		t.Setenv(key, "")
	}
	for _, key := range snapshotEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name         string
		env          map[string]string
		wantErr      bool
		wantHTTPAddr string
		wantNATSURL  string
	}{
		{
			name:    "MissingDatabaseURL",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:         "DefaultAddresses",
			env:          map[string]string{"DODESK_DATABASE_URL": "postgres://localhost/dodesk"},
			wantHTTPAddr: ":8080",
		},
		{
			name: "CustomAddresses",
			env: map[string]string{
				"DODESK_DATABASE_URL": "postgres://db:5432/dodesk",
				"DODESK_HTTP_ADDR":    ":3000",
				"DODESK_NATS_URL":     "nats://localhost:4222",
			},
			wantHTTPAddr: ":3000",
			wantNATSURL:  "nats://localhost:4222",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DatabaseURL != tc.env["DODESK_DATABASE_URL"] {
				t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, tc.env["DODESK_DATABASE_URL"])
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.NATSURL != tc.wantNATSURL {
				t.Errorf("NATSURL = %q, want %q", cfg.NATSURL, tc.wantNATSURL)
			}
		})
	}
}

func TestLoad_SnapshotDefaults(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("DODESK_DATABASE_URL", "postgres://localhost/dodesk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SnapshotInterval != 3*time.Minute {
		t.Errorf("SnapshotInterval = %v, want 3m", cfg.SnapshotInterval)
	}
	if cfg.SnapshotS3Region != "us-east-1" {
		t.Errorf("SnapshotS3Region = %q, want 'us-east-1'", cfg.SnapshotS3Region)
	}
	if cfg.SnapshotS3Key != "dodesk/backup.jsonl" {
		t.Errorf("SnapshotS3Key = %q, want 'dodesk/backup.jsonl'", cfg.SnapshotS3Key)
	}
	if cfg.SnapshotGitFile != "dodesk.jsonl" {
		t.Errorf("SnapshotGitFile = %q, want 'dodesk.jsonl'", cfg.SnapshotGitFile)
	}
	if cfg.SnapshotGitBranch != "main" {
		t.Errorf("SnapshotGitBranch = %q, want 'main'", cfg.SnapshotGitBranch)
	}
}

func TestLoad_SnapshotCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("DODESK_DATABASE_URL", "postgres://localhost/dodesk")
	t.Setenv("DODESK_SNAPSHOT_INTERVAL", "30s")
	t.Setenv("DODESK_SNAPSHOT_S3_BUCKET", "desk-backups")
	t.Setenv("DODESK_SNAPSHOT_GIT_REPO", "/srv/backup.git")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SnapshotInterval != 30*time.Second {
		t.Errorf("SnapshotInterval = %v, want 30s", cfg.SnapshotInterval)
	}
	if cfg.SnapshotS3Bucket != "desk-backups" {
		t.Errorf("SnapshotS3Bucket = %q, want 'desk-backups'", cfg.SnapshotS3Bucket)
	}
	if cfg.SnapshotGitRepo != "/srv/backup.git" {
		t.Errorf("SnapshotGitRepo = %q, want '/srv/backup.git'", cfg.SnapshotGitRepo)
	}
}

func TestLoad_BadInterval(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("DODESK_DATABASE_URL", "postgres://localhost/dodesk")
	t.Setenv("DODESK_SNAPSHOT_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid interval, got nil")
	}
}
