// Package config loads runtime settings from the environment (and an optional
// .env file) through Viper.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// Storage drivers
const (
	StorageLocal    = "local"
	StorageSupabase = "supabase"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Render   RenderConfig   `mapstructure:"render"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	Bucket        string `mapstructure:"bucket"`
	LocalDir      string `mapstructure:"localdir"`
	PublicBaseURL string `mapstructure:"publicbaseurl"`
}

type SupabaseConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtsecret"`
}

type RenderConfig struct {
	ChromePath     string `mapstructure:"chromepath"`
	TimeoutSeconds int    `mapstructure:"timeoutseconds"`
}

var envBindings = map[string]string{
	"app.port":              "PORT",
	"app.env":               "APP_ENV",
	"log.level":             "LOG_LEVEL",
	"database.url":          "DATABASE_URL",
	"storage.driver":        "STORAGE_DRIVER",
	"storage.bucket":        "STORAGE_BUCKET",
	"storage.localdir":      "STORAGE_LOCAL_DIR",
	"storage.publicbaseurl": "STORAGE_PUBLIC_BASE_URL",
	"supabase.url":          "SUPABASE_URL",
	"supabase.key":          "SUPABASE_SERVICE_KEY",
	"auth.jwtsecret":        "JWT_SECRET",
	"render.chromepath":     "CHROME_PATH",
	"render.timeoutseconds": "RENDER_TIMEOUT_SECONDS",
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.env", Development)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("storage.driver", StorageLocal)
	v.SetDefault("storage.bucket", "cvs")
	v.SetDefault("storage.localdir", "cv-data")
	v.SetDefault("storage.publicbaseurl", "http://localhost:3000/files")
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.key", "")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("render.chromepath", "")
	v.SetDefault("render.timeoutseconds", 60)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "bind %s", env)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal configuration")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.App.Env {
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid environment: %s", c.App.Env)
	}

	switch c.Storage.Driver {
	case StorageLocal:
	case StorageSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return errors.New("supabase storage requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s", c.Storage.Driver)
	}

	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return errors.New("production requires JWT_SECRET")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == Production
}

// RenderTimeout is the per-document budget for the PDF renderer.
func (c *Config) RenderTimeout() time.Duration {
	if c.Render.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Render.TimeoutSeconds) * time.Second
}
