package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host" env:"FITDIARIO_HOST"`
	Port        int    `toml:"port" env:"FITDIARIO_PORT"`
	// prometheus metrics server
	MetricsHost string `toml:"metrics_host"`
	MetricsPort int    `toml:"metrics_port" env:"FITDIARIO_METRICS_PORT"`
	// persistence
	StorePath string `toml:"store_path" env:"FITDIARIO_STORE_PATH"`
	// logging
	LogLevel      string `toml:"log_level" env:"FITDIARIO_LOG_LEVEL"`
	LogsPath      string `toml:"logs_path" env:"FITDIARIO_LOGS_PATH"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config file, picks the section for env and applies
// FITDIARIO_* environment variable overrides on top of it.
func Load(env, path string) (*Config, error) {
	var all Toml
	if _, err := toml.DecodeFile(path, &all); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := all.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s missing in %s", env, path)
	}
	cfg.Environment = env

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	return cfg, nil
}
