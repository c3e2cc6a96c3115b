package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Server holds server configuration loaded from environment variables
type Server struct {
	Host        string `env:"HOST" envDefault:"0.0.0.0"`
	Port        int    `env:"PORT" envDefault:"8080"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:""`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads server configuration from the environment
func Load() (*Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address
func (c *Server) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
