package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "shelfspace.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "SHELFSPACE_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "SHELFSPACE_CORS_ORIGINS")
	setString(&cfg.Server.Environment, "SHELFSPACE_ENV")

	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "SHELFSPACE_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "SHELFSPACE_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "SHELFSPACE_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "SHELFSPACE_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "SHELFSPACE_PG_HEALTH_CHECK")

	setString(&cfg.Auth.SessionSecret, "SHELFSPACE_SESSION_SECRET")
	setDuration(&cfg.Auth.SessionTTL, "SHELFSPACE_SESSION_TTL")
	setInt(&cfg.Auth.BcryptCost, "SHELFSPACE_BCRYPT_COST")

	setFloat64(&cfg.Rate.API.RequestsPerSecond, "SHELFSPACE_RATE_RPS")
	setInt(&cfg.Rate.API.Burst, "SHELFSPACE_RATE_BURST")
	setFloat64(&cfg.Rate.Auth.RequestsPerSecond, "SHELFSPACE_RATE_AUTH_RPS")
	setInt(&cfg.Rate.Auth.Burst, "SHELFSPACE_RATE_AUTH_BURST")

	setString(&cfg.Upload.Dir, "SHELFSPACE_UPLOAD_DIR")
	setInt64(&cfg.Upload.MaxBytes, "SHELFSPACE_UPLOAD_MAX_BYTES")

	setInt64(&cfg.Cache.MaxSizeMB, "SHELFSPACE_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "SHELFSPACE_CACHE_TTL")

	setString(&cfg.Logging.Level, "SHELFSPACE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "SHELFSPACE_LOG_SERVICE")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Auth.SessionSecret == "" {
		return errors.New("auth.session_secret is required (set SHELFSPACE_SESSION_SECRET)")
	}
	if len(cfg.Auth.SessionSecret) < 32 {
		return errors.New("auth.session_secret must be at least 32 bytes")
	}
	if cfg.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	if cfg.Rate.API.Burst < 1 || cfg.Rate.Auth.Burst < 1 {
		return errors.New("rate bursts must be >= 1")
	}
	if cfg.Upload.MaxBytes < 1 {
		return errors.New("upload.max_bytes must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setStringSlice parses a comma-separated env value.
func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
