// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"chipin"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Path string `envconfig:"DB_PATH" default:"./data/chipin.db"`
	}

	Auth struct {
		JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
		TokenDuration time.Duration `envconfig:"TOKEN_DURATION" default:"24h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

// JSONLogs reports whether logs should be emitted as JSON lines.
func (c *Config) JSONLogs() bool {
	return c.App.LogFormat == "json"
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
