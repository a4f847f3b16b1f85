package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"wanderplan/internal/models"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	API        APIConfig        `yaml:"api"`
	Trip       TripConfig       `yaml:"trip"`
	Exports    ExportConfig     `yaml:"exports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type StorageConfig struct {
	// Driver selects the key-value backend: memory, redis or sqlite.
	Driver           string       `yaml:"driver"`
	KeyPrefix        string       `yaml:"key_prefix"`
	FailoverToMemory bool         `yaml:"failover_to_memory"`
	Redis            RedisConfig  `yaml:"redis"`
	SQLite           SQLiteConfig `yaml:"sqlite"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type APIConfig struct {
	Port      int                `yaml:"port"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type TripConfig struct {
	// MaxDays caps the trip duration accepted on save.
	MaxDays int `yaml:"max_days"`
	// SeedActivitiesPath points at a YAML file loaded into an empty store.
	SeedActivitiesPath string `yaml:"seed_activities_path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

// Load reads the YAML config at path, after loading .env and expanding
// ${VAR} references against the environment.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "redis":
		if c.Storage.Redis.Address == "" {
			return errors.New("storage.redis.address is required for the redis driver")
		}
	case "sqlite":
		if c.Storage.SQLite.Path == "" {
			return errors.New("storage.sqlite.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Trip.MaxDays < 1 {
		return errors.New("trip.max_days must be at least 1")
	}

	if c.API.Auth.Enabled && len(c.API.Auth.APIKeys) == 0 {
		return errors.New("api.auth.api_keys must not be empty when auth is enabled")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "wanderplan"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.API.RateLimit.RPS == 0 {
		c.API.RateLimit.RPS = models.RateLimitRPS
	}
	if c.API.RateLimit.Burst == 0 {
		c.API.RateLimit.Burst = models.RateLimitBurst
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Trip.MaxDays == 0 {
		c.Trip.MaxDays = models.DefaultMaxTripDays
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "./exports"
	}
}

// ValidateActivities checks a seed activity pool for duplicate or zero ids
// and malformed costs before it is written into an empty store.
func ValidateActivities(activities []models.Activity) error {
	ids := make(map[int64]bool)
	for _, a := range activities {
		if a.ID == 0 {
			return fmt.Errorf("activity %q has invalid ID 0", a.Title)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID found: %d", a.ID)
		}
		if a.Title == "" {
			return fmt.Errorf("activity %d has an empty title", a.ID)
		}
		if a.Cost < 0 {
			return fmt.Errorf("activity %q has negative cost", a.Title)
		}
		ids[a.ID] = true
	}
	return nil
}
