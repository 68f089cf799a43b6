package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load populates the configuration struct from environment variables,
// honoring `env` struct tags. A .env file in the working directory is
// loaded once per process before the first parse; a missing file is fine.
//
// Example:
//
//	type Config struct {
//		APIBaseURL string `env:"FORUM_API_URL" envDefault:"http://localhost:8080/api"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { … }
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is a development convenience, not a requirement.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. For configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}
