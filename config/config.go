package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	IsProduction bool `env:"PRODUCTION" envDefault:"false"`
	DebugLogs    bool `env:"DEBUG_LOGS" envDefault:"false"`
}

func ReadFromEnv() (Config, error) {
	// A .env file is optional; without one, the process environment is used
	// as-is.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, wrap.Error(err, "failed to parse environment variables")
	}

	return config, nil
}
