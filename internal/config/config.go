// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings for the verification API server.
type Config struct {
	ListenAddr     string        `env:"FAIRDICE_LISTEN_ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"FAIRDICE_REQUEST_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
