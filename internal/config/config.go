package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server  ServerConfig
	RootDir string `env:"ROOT_DIR" env-required:"true"`
	Secret  string `env:"SECRET"`
	Env     string `env:"ENV" env-default:"development"`
}

type ServerConfig struct {
	Addr            string        `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func MustLoad() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.IsProduction() && cfg.Secret == "" {
		return nil, errors.New("SECRET is required when ENV=production")
	}

	return &cfg, nil
}

// IsProduction reports whether signed-request verification must be enforced.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
