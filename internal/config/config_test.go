package config

import (
	"os"
	"path/filepath"
	"testing"

	"shareit/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("SHAREIT_DB_PATH", "data/test.db")

	yamlContent := `
app:
  name: "shareit-test"
database:
  driver: "SQLite"
  path: "${SHAREIT_DB_PATH}"
kafka:
  brokers: ["localhost:9092"]
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "data/test.db" {
		t.Errorf("expected expanded db path, got %s", cfg.Database.Path)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected normalized driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.API.HTTP.Port != 8080 {
		t.Errorf("expected default http port 8080, got %d", cfg.API.HTTP.Port)
	}
	if cfg.API.CallerHeader != models.CallerHeader {
		t.Errorf("expected default caller header, got %s", cfg.API.CallerHeader)
	}
	if cfg.API.CallerLimit.Requests != models.DefaultRateLimitRequests {
		t.Errorf("expected default caller limit, got %d", cfg.API.CallerLimit.Requests)
	}
	if cfg.Kafka.Topic != "shareit.bookings" {
		t.Errorf("expected default kafka topic, got %s", cfg.Kafka.Topic)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid sqlite config",
			cfg:     Config{Database: DatabaseConfig{Driver: "sqlite", Path: "path"}},
			wantErr: false,
		},
		{
			name:    "memory driver needs no path",
			cfg:     Config{Database: DatabaseConfig{Driver: "memory"}},
			wantErr: false,
		},
		{
			name:    "missing path",
			cfg:     Config{Database: DatabaseConfig{Driver: "sqlite"}},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Database: DatabaseConfig{Driver: "oracle", Path: "path"}},
			wantErr: true,
		},
		{
			name: "backup without storage path",
			cfg: Config{Database: DatabaseConfig{
				Driver: "sqlite",
				Path:   "path",
				Backup: BackupConfig{Enabled: true},
			}},
			wantErr: true,
		},
		{
			name: "backup on memory driver",
			cfg: Config{Database: DatabaseConfig{
				Driver: "memory",
				Backup: BackupConfig{Enabled: true, StoragePath: "backups"},
			}},
			wantErr: true,
		},
		{
			name: "kafka without topic",
			cfg: Config{
				Database: DatabaseConfig{Driver: "memory"},
				Kafka:    KafkaConfig{Brokers: []string{"localhost:9092"}},
			},
			wantErr: true,
		},
		{
			name: "duplicate api key",
			cfg: Config{
				Database: DatabaseConfig{Driver: "memory"},
				API: APIConfig{Auth: APIAuthConfig{APIKeys: []APIClientKey{
					{Key: "k", Name: "a"},
					{Key: "k", Name: "b"},
				}}},
			},
			wantErr: true,
		},
		{
			name: "auth without keys",
			cfg: Config{
				Database: DatabaseConfig{Driver: "memory"},
				API:      APIConfig{Auth: APIAuthConfig{Enabled: true}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
