package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// Database drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                   int      `yaml:"port"`
	BasePath               string   `yaml:"base_path"`
	Mode                   string   `yaml:"mode"`
	RequestIPHeader        string   `yaml:"request_ip_header"`
	RateLimitPerSec        float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst         int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds        int      `yaml:"cache_ttl_seconds"`
	RequestTimeoutSeconds  int      `yaml:"request_timeout_seconds"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
	BodyLimitBytes         int64    `yaml:"body_limit_bytes"`
	CORSOrigins            []string `yaml:"cors_origins"`

	CacheTTL        time.Duration `yaml:"-"`
	RequestTimeout  time.Duration `yaml:"-"`
	ShutdownTimeout time.Duration `yaml:"-"`
}

// Development reports whether internal error detail may be exposed.
func (s ServerConfig) Development() bool {
	return s.Mode == ModeDevelopment
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	Name                   string `yaml:"name"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	ConnectTimeoutSeconds  int    `yaml:"connect_timeout_seconds"`
}

// LogConfig holds the logger configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   5000,
			BasePath:               "/api",
			Mode:                   ModeProduction,
			RateLimitPerSec:        10,
			RateLimitBurst:         20,
			RequestTimeoutSeconds:  30,
			ShutdownTimeoutSeconds: 5,
			BodyLimitBytes:         10 << 20,
			CORSOrigins:            []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:                 DriverMongo,
			DSN:                    "mongodb://localhost:27017",
			Name:                   "equipment_tracker",
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
			ConnectTimeoutSeconds:  10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration from the given path. A missing file leaves
// the defaults in place. Environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cfg.Server.RequestTimeout = time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second
	cfg.Server.ShutdownTimeout = time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := firstEnv("APP_ENV", "NODE_ENV"); v != "" {
		c.Server.Mode = strings.ToLower(v)
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = strings.ToLower(v)
	}
	if v := firstEnv("DATABASE_URI", "MONGODB_URI"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case ModeDevelopment, ModeProduction, ModeTest:
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be one of %s, %s, %s", c.Server.Mode, ModeDevelopment, ModeProduction, ModeTest))
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("server.request_timeout_seconds must be positive"))
	}
	if c.Server.BodyLimitBytes <= 0 {
		errs = append(errs, errors.New("server.body_limit_bytes must be positive"))
	}
	if c.Server.RateLimitPerSec < 0 || c.Server.RateLimitBurst < 0 {
		errs = append(errs, errors.New("server rate limit must not be negative"))
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required for the mongo driver"))
		}
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q must be one of %s, %s, %s", c.Database.Driver, DriverMongo, DriverPostgres, DriverSQLite))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}

	return errors.Join(errs...)
}
