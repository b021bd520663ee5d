package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultEnv             = "development"
	defaultLogLevel        = "info"
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultShutdownSeconds = "10"
	defaultMarginPct       = "0.15"
)

// Config holds application configuration sourced from environment variables and an optional .env file.
type Config struct {
	Env              string
	LogLevel         string
	DBPath           string
	Port             string
	SeedDemo         bool
	ShutdownTimeout  time.Duration
	DefaultMarginPct float64
}

// IsDev reports whether the application runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads configuration from ./.env (if present) and the process environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile reads KEY=VALUE pairs from path, then overlays environment variables.
// A missing file is not an error; environment variables always win over file values.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config file %s: %w", path, err)
	}
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownSeconds)
	v.SetDefault("DEFAULT_MARGIN_PCT", defaultMarginPct)

	cfg := Config{
		Env:      v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		DBPath:   v.GetString("DB_PATH"),
		Port:     v.GetString("PORT"),
	}

	cfg.SeedDemo = cfg.IsDev()
	if raw := v.GetString("SEED_DEMO"); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SEED_DEMO must be a boolean: %w", err)
		}
		cfg.SeedDemo = seed
	}

	seconds, err := strconv.Atoi(v.GetString("SHUTDOWN_TIMEOUT_SECONDS"))
	if err != nil || seconds <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer, got %q", v.GetString("SHUTDOWN_TIMEOUT_SECONDS"))
	}
	cfg.ShutdownTimeout = time.Duration(seconds) * time.Second

	margin, err := strconv.ParseFloat(v.GetString("DEFAULT_MARGIN_PCT"), 64)
	if err != nil || margin < 0 || margin >= 1 {
		return Config{}, fmt.Errorf("DEFAULT_MARGIN_PCT must be a fraction in [0, 1), got %q", v.GetString("DEFAULT_MARGIN_PCT"))
	}
	cfg.DefaultMarginPct = margin

	return cfg, nil
}
