package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings read from the environment. They are the defaults of
// the matching command line flags.
type Env struct {
	DataDir  string `env:"STEERSIM_DATA"      envDefault:".steersim"`
	LogLevel string `env:"STEERSIM_LOG_LEVEL" envDefault:"warn"`
	LogJSON  bool   `env:"STEERSIM_LOG_JSON"`
	Workers  int    `env:"STEERSIM_WORKERS"   envDefault:"4"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}
