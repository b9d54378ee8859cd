package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceHTTP     = "http"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CatalogConfig selects where canonical ingredient names come from
type CatalogConfig struct {
	Source   string              `mapstructure:"source"` // file, postgres, sqlite or http
	FilePath string              `mapstructure:"file_path"`
	HTTP     IngredientAPIConfig `mapstructure:"http"`
}

// IngredientAPIConfig configures the remote ingredient service
type IngredientAPIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	MaxRetries        int           `mapstructure:"max_retries"`
}

// DatabaseConfig holds postgres and sqlite settings
type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxOpen    int    `mapstructure:"max_open"`
	MaxIdle    int    `mapstructure:"max_idle"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DSN returns the postgres connection URL.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// MatchingConfig holds standardization settings
type MatchingConfig struct {
	Threshold          int           `mapstructure:"threshold"`
	EnableCache        bool          `mapstructure:"enable_cache"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	EnableDebugLogging bool          `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Load loads configuration from environment variables and config files.
// Environment variables use the PANTRY_ prefix, e.g. PANTRY_CATALOG_SOURCE.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// default locations.
func LoadFile(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pantry/")
	}

	v.SetEnvPrefix("PANTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile exports variables from ./.env that are not already set in the
// environment. A missing file is not an error.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	env := viper.New()
	env.SetConfigFile(".env")
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values. Every key needs a default so
// AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("catalog.source", SourceFile)
	v.SetDefault("catalog.file_path", "data/items.json")
	v.SetDefault("catalog.http.base_url", "")
	v.SetDefault("catalog.http.api_key", "")
	v.SetDefault("catalog.http.timeout", "30s")
	v.SetDefault("catalog.http.requests_per_second", 5.0)
	v.SetDefault("catalog.http.max_retries", 3)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open", 10)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.sqlite_path", "data/pantry.db")

	v.SetDefault("matching.threshold", 80)
	v.SetDefault("matching.enable_cache", true)
	v.SetDefault("matching.cache_ttl", "24h")
	v.SetDefault("matching.enable_debug_logging", false)

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Matching.Threshold < 1 || config.Matching.Threshold > 100 {
		return fmt.Errorf("matching threshold must be between 1 and 100, got: %d", config.Matching.Threshold)
	}

	switch config.Catalog.Source {
	case SourceFile:
		if config.Catalog.FilePath == "" {
			return fmt.Errorf("catalog file path is required when source is 'file'")
		}
	case SourcePostgres:
		if config.Database.Host == "" || config.Database.Name == "" {
			return fmt.Errorf("database host and name are required when source is 'postgres'")
		}
	case SourceSQLite:
		if config.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required when source is 'sqlite'")
		}
	case SourceHTTP:
		if config.Catalog.HTTP.BaseURL == "" {
			return fmt.Errorf("ingredient service base URL is required when source is 'http' (set PANTRY_CATALOG_HTTP_BASE_URL)")
		}
	default:
		return fmt.Errorf("catalog source must be one of file, postgres, sqlite, http; got: %s", config.Catalog.Source)
	}

	switch config.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be 'json' or 'text', got: %s", config.Log.Format)
	}

	return nil
}
