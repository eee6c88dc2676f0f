package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds the server's environment configuration.
type Config struct {
	BaseURL   string `env:"DATAHUB_BASE_URL" default:"http://localhost:8088"`
	Username  string `env:"DATAHUB_USERNAME"`
	Password  string `env:"DATAHUB_PASSWORD"`
	TokenPath string `env:"DATAHUB_TOKEN_PATH"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"console"`
	LogFile   string `env:"LOG_FILE"`
}

// Load reads configuration from the environment, after loading an optional
// .env file. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.TokenPath == "" {
		cfg.TokenPath = defaultTokenPath()
	}

	return &cfg, nil
}

// defaultTokenPath puts the token file next to the server executable,
// falling back to the working directory when the executable path is unknown.
func defaultTokenPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ".datahub_token"
	}
	return filepath.Join(filepath.Dir(exe), ".datahub_token")
}
