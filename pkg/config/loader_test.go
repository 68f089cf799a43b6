package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utdiscussions/forumkit/pkg/config"
)

type testConfig struct {
	BaseURL  string        `env:"TESTCFG_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout  time.Duration `env:"TESTCFG_TIMEOUT" envDefault:"10s"`
	DemoMode bool          `env:"TESTCFG_DEMO" envDefault:"false"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.False(t, cfg.DemoMode)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("TESTCFG_BASE_URL", "https://forum.example.edu/api")
		t.Setenv("TESTCFG_DEMO", "true")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://forum.example.edu/api", cfg.BaseURL)
		assert.True(t, cfg.DemoMode)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("unparseable value reported", func(t *testing.T) {
		t.Setenv("TESTCFG_TIMEOUT", "not-a-duration")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}
