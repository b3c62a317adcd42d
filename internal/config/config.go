package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Store struct {
		// Driver is one of file, sqlite, postgres or memory
		Driver   string `yaml:"driver" env:"STORE_DRIVER"`
		Path     string `yaml:"path" env:"STORE_PATH"`
		SeedPath string `yaml:"seed_path" env:"STORE_SEED_PATH"`
		DSN      string `yaml:"dsn" env:"STORE_DSN"`
		FailOpen bool   `yaml:"fail_open" env:"STORE_FAIL_OPEN"`
	} `yaml:"store"`

	Session struct {
		Secret     string `yaml:"secret" env:"SESSION_SECRET"`
		TTL        string `yaml:"ttl" env:"SESSION_TTL"`
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		HTTPOnly   bool   `yaml:"http_only" env:"SESSION_HTTP_ONLY"`
		Issuer     string `yaml:"issuer" env:"SESSION_ISSUER"`
		// Backend is memory or redis
		Backend string `yaml:"backend" env:"SESSION_BACKEND"`
		Redis   struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"REDIS_DB"`
		} `yaml:"redis"`
	} `yaml:"session"`

	Auth struct {
		// Accounts maps each role to its password (plain or bcrypt hash)
		Accounts map[string]string `yaml:"accounts"`
	} `yaml:"auth"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing file is fine, defaults and env still apply
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.ShutdownTimeout = "10s"

	config.Store.Driver = "file"
	config.Store.Path = "data/db.json"
	config.Store.SeedPath = "seed/alumni.json"
	config.Store.FailOpen = true

	config.Session.TTL = "168h"
	config.Session.CookieName = "auth-role"
	config.Session.Issuer = "alumni-portal"
	config.Session.Backend = "memory"
	config.Session.Redis.Addr = "localhost:6379"

	config.Auth.Accounts = map[string]string{
		"alumni":   "alumni@123",
		"students": "students@123",
		"admin":    "admin@123",
		"collage":  "collage@123",
	}

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Store.Driver {
	case "file", "sqlite":
		if config.Store.Path == "" {
			return fmt.Errorf("store path is required for the %s driver", config.Store.Driver)
		}
	case "postgres":
		if config.Store.DSN == "" {
			return fmt.Errorf("store dsn is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session ttl format: %w", err)
	}
	switch config.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session backend %q", config.Session.Backend)
	}

	for _, d := range []string{config.Server.ReadTimeout, config.Server.WriteTimeout, config.Server.ShutdownTimeout} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid server timeout %q: %w", d, err)
		}
	}

	if len(config.Auth.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
