package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"survey-service/internal/ui"
)

// EnvPrefix namespaces every environment override, e.g. SURVEY_REDIS_ADDR.
const EnvPrefix = "SURVEY_"

// Response storage drivers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"PORT"`
		SessionKey    string `yaml:"session_key" env:"SESSION_KEY"`
		SecureCookies bool   `yaml:"secure_cookies" env:"SECURE_COOKIES"`
	} `yaml:"server" envPrefix:"SERVER_"`
	Redis struct {
		Addr     string `yaml:"addr" env:"ADDR"`
		Password string `yaml:"password" env:"PASSWORD"`
		DB       int    `yaml:"db" env:"DB"`
	} `yaml:"redis" envPrefix:"REDIS_"`
	Postgres struct {
		URL string `yaml:"url" env:"URL"`
	} `yaml:"postgres" envPrefix:"POSTGRES_"`
	SQLite struct {
		Path string `yaml:"path" env:"PATH"`
	} `yaml:"sqlite" envPrefix:"SQLITE_"`
	Storage struct {
		Responses string `yaml:"responses" env:"RESPONSES"`
	} `yaml:"storage" envPrefix:"STORAGE_"`
	Surveys struct {
		Dir string `yaml:"dir" env:"DIR"`
		TTL string `yaml:"ttl" env:"TTL"`
	} `yaml:"surveys" envPrefix:"SURVEYS_"`
	Captcha struct {
		MaxOperand  int    `yaml:"max_operand" env:"MAX_OPERAND"`
		MaxAttempts int    `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
		TTL         string `yaml:"ttl" env:"TTL"`
	} `yaml:"captcha" envPrefix:"CAPTCHA_"`
	Theme ui.Theme `yaml:"theme"`
	Log   struct {
		Level  string `yaml:"level" env:"LEVEL"`
		Format string `yaml:"format" env:"FORMAT"`
	} `yaml:"log" envPrefix:"LOG_"`
}

// Default returns the settings used for anything the file and environment leave unset.
func Default() Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.SQLite.Path = "data/responses.db"
	cfg.Storage.Responses = StorageMemory
	cfg.Surveys.Dir = "surveys"
	cfg.Surveys.TTL = "10m"
	cfg.Captcha.MaxOperand = 20
	cfg.Captcha.MaxAttempts = 5
	cfg.Captcha.TTL = "1h"
	cfg.Theme = ui.DefaultTheme()
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load reads YAML config from path on top of Default and applies SURVEY_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.Theme = cfg.Theme.Merge(ui.DefaultTheme())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: invalid port %q", c.Server.Port))
	}
	if key := c.Server.SessionKey; key != "" && len(key) < 32 {
		errs = append(errs, errors.New("server.session_key: must be at least 32 bytes"))
	}
	switch c.Storage.Responses {
	case StorageMemory:
	case StorageSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("sqlite.path: required for sqlite storage"))
		}
	case StoragePostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("postgres.url: required for postgres storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.responses: unknown driver %q", c.Storage.Responses))
	}
	if c.Captcha.MaxOperand < 1 {
		errs = append(errs, fmt.Errorf("captcha.max_operand: must be positive, got %d", c.Captcha.MaxOperand))
	}
	if c.Captcha.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("captcha.max_attempts: must not be negative, got %d", c.Captcha.MaxAttempts))
	}
	for name, raw := range map[string]string{
		"surveys.ttl": c.Surveys.TTL,
		"captcha.ttl": c.Captcha.TTL,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
