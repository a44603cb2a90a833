package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds SSH server settings read from the environment.
// Empty values leave the command-line defaults in place.
type ServerEnv struct {
	Address     string        `env:"ARCADE_SSH_ADDR"`
	HostKeyPath string        `env:"ARCADE_HOST_KEY"`
	DBPath      string        `env:"ARCADE_DB"`
	IdleTimeout time.Duration `env:"ARCADE_IDLE_TIMEOUT"`
}

// LoadServerEnv parses ServerEnv from the process environment.
func LoadServerEnv() (ServerEnv, error) {
	return parseServerEnv(env.Options{})
}

func parseServerEnv(opts env.Options) (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return ServerEnv{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.IdleTimeout < 0 {
		return ServerEnv{}, fmt.Errorf("parse env: ARCADE_IDLE_TIMEOUT must not be negative")
	}
	return cfg, nil
}
