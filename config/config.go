package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"eventplanner/internal/domain"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StorageConfig selects and configures the key/value backend holding the event blob.
type StorageConfig struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
	Key         string `yaml:"key"`
}

// SessionConfig describes the user every unauthenticated action is performed as.
type SessionConfig struct {
	UserID   string `yaml:"user_id"`
	UserName string `yaml:"user_name"`
}

// EmailConfig configures the invitation mailer. An empty provider simulates delivery.
type EmailConfig struct {
	Provider           string        `yaml:"provider"`
	FromAddress        string        `yaml:"from_address"`
	FromName           string        `yaml:"from_name"`
	AWSRegion          string        `yaml:"aws_region"`
	AWSAccessKeyID     string        `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string        `yaml:"aws_secret_access_key"`
	SimulatedDelay     time.Duration `yaml:"simulated_delay"`
}

// Config holds all configuration for the application
type Config struct {
	Environment        string        `yaml:"environment"`
	Port               string        `yaml:"port"`
	Timezone           string        `yaml:"timezone"`
	LogLevel           string        `yaml:"log_level"`
	JWTSecret          string        `yaml:"jwt_secret"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	ContextTimeout     time.Duration `yaml:"context_timeout"`
	Storage            StorageConfig `yaml:"storage"`
	Session            SessionConfig `yaml:"session"`
	Email              EmailConfig   `yaml:"email"`

	location *time.Location
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Environment:        "development",
		Port:               "8080",
		Timezone:           "Local",
		LogLevel:           "info",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		ContextTimeout:     10 * time.Second,
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "eventplanner.db",
			Key:        domain.DefaultStorageKey,
		},
		Session: SessionConfig{
			UserID:   domain.DefaultSessionUserID,
			UserName: "Current User",
		},
		Email: EmailConfig{
			AWSRegion:      "us-east-1",
			SimulatedDelay: time.Second,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by CONFIG_FILE and
// environment variables, in that order. A .env file is loaded first outside production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment variables.
	if env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn(".env file could not be loaded", "err", err)
		}
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Environment = env
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.Timezone, "TIMEZONE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.SQLitePath, "SQLITE_PATH")
	setString(&c.Storage.DatabaseURL, "DATABASE_URL")
	setString(&c.Storage.Key, "STORAGE_KEY")
	setString(&c.Session.UserID, "SESSION_USER_ID")
	setString(&c.Session.UserName, "SESSION_USER_NAME")
	setString(&c.Email.Provider, "EMAIL_PROVIDER")
	setString(&c.Email.FromAddress, "EMAIL_FROM_ADDRESS")
	setString(&c.Email.FromName, "EMAIL_FROM_NAME")
	setString(&c.Email.AWSRegion, "AWS_REGION")
	setString(&c.Email.AWSAccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.Email.AWSSecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		c.CORSAllowedOrigins = strings.Split(s, ",")
	}
	if err := setDuration(&c.Email.SimulatedDelay, "EMAIL_SIMULATED_DELAY"); err != nil {
		return err
	}
	return setDuration(&c.ContextTimeout, "CONTEXT_TIMEOUT")
}

func (c *Config) normalize() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		c.Storage.Key = domain.DefaultStorageKey
	}
	if c.Session.UserID == "" {
		c.Session.UserID = domain.DefaultSessionUserID
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.ContextTimeout <= 0 {
		c.ContextTimeout = 10 * time.Second
	}
	if c.Email.SimulatedDelay < 0 {
		c.Email.SimulatedDelay = 0
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

// Location returns the zone event dates are interpreted in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
