package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Session struct {
		Secret string `yaml:"secret"`
	} `yaml:"session"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// IsProduction controls the Secure attribute on the session cookie among
// other things.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads config.yaml (CONFIG_PATH overrides the location) and then lets
// environment variables override individual fields. SESSION_SECRET is
// mandatory: there is no default signing key, a missing secret aborts
// startup rather than silently issuing forgeable sessions.
func Load() (*Config, error) {
	// Development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		decodeErr := decoder.Decode(&cfg)
		f.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, decodeErr)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SERVER_PORT must be an integer, got %q", v)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = cfg.Server.CORSOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, origin)
			}
		}
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database DSN is required (set DATABASE_URL or database.url in %s)", configPath)
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("session secret is required (set SESSION_SECRET or session.secret in %s)", configPath)
	}

	return &cfg, nil
}
