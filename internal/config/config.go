package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Address       string   `env:"ADDRESS" envDefault:"localhost:8080"`
	DatabaseDSN   string   `env:"DATABASE_DSN"`
	JWTSecret     string   `env:"JWT_SECRET"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:","`
	AppEnv        string   `env:"APP_ENV" envDefault:"development"`
	MigrationsDir string   `env:"MIGRATIONS_DIR" envDefault:"migrations"`
}

func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret cannot be empty")
	}
	if c.AppEnv != EnvDevelopment && c.AppEnv != EnvProduction {
		return fmt.Errorf("unknown app env %q", c.AppEnv)
	}
	return nil
}

// Production reports whether error responses should suppress datastore
// diagnostics and logs should use the production encoder.
func (c *Config) Production() bool {
	return c.AppEnv == EnvProduction
}
