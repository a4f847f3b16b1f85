package config

import (
	"os"
	"path/filepath"
	"testing"

	"wanderplan/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "wanderplan"
  environment: "test"
storage:
  driver: "sqlite"
  sqlite:
    path: "test.db"
api:
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("expected driver sqlite, got %s", cfg.Storage.Driver)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.API.Port)
	}
	if cfg.Trip.MaxDays != models.DefaultMaxTripDays {
		t.Errorf("expected default max_days %d, got %d", models.DefaultMaxTripDays, cfg.Trip.MaxDays)
	}
	if cfg.API.Auth.HeaderAPIKey != "x-api-key" {
		t.Errorf("expected default api key header, got %s", cfg.API.Auth.HeaderAPIKey)
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("WANDERPLAN_REDIS_ADDR", "localhost:6380")

	yamlContent := `
storage:
  driver: "redis"
  redis:
    address: "${WANDERPLAN_REDIS_ADDR}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Redis.Address != "localhost:6380" {
		t.Errorf("expected expanded redis address, got %s", cfg.Storage.Redis.Address)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid memory config",
			cfg: Config{
				Storage: StorageConfig{Driver: "memory"},
				Trip:    TripConfig{MaxDays: 30},
			},
			wantErr: false,
		},
		{
			name: "redis without address",
			cfg: Config{
				Storage: StorageConfig{Driver: "redis"},
				Trip:    TripConfig{MaxDays: 30},
			},
			wantErr: true,
		},
		{
			name: "sqlite without path",
			cfg: Config{
				Storage: StorageConfig{Driver: "sqlite"},
				Trip:    TripConfig{MaxDays: 30},
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			cfg: Config{
				Storage: StorageConfig{Driver: "postgres"},
				Trip:    TripConfig{MaxDays: 30},
			},
			wantErr: true,
		},
		{
			name: "auth enabled without keys",
			cfg: Config{
				Storage: StorageConfig{Driver: "memory"},
				Trip:    TripConfig{MaxDays: 30},
				API:     APIConfig{Auth: APIAuthConfig{Enabled: true}},
			},
			wantErr: true,
		},
		{
			name: "zero max days",
			cfg: Config{
				Storage: StorageConfig{Driver: "memory"},
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

func TestValidateActivities(t *testing.T) {
	valid := []models.Activity{
		{ID: 1, Title: "Museum", Cost: 20},
		{ID: 2, Title: "Boat tour", Cost: 35},
	}
	if err := ValidateActivities(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateActivities([]models.Activity{{ID: 0, Title: "x"}}); err == nil {
		t.Error("expected error for zero id")
	}
	if err := ValidateActivities([]models.Activity{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}}); err == nil {
		t.Error("expected error for duplicate ids")
	}
	if err := ValidateActivities([]models.Activity{{ID: 1, Title: ""}}); err == nil {
		t.Error("expected error for empty title")
	}
	if err := ValidateActivities([]models.Activity{{ID: 1, Title: "x", Cost: -5}}); err == nil {
		t.Error("expected error for negative cost")
	}
}
