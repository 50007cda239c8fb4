package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.DataPath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		require.NoError(t, cfg.Validate())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATA_PATH", "/tmp/mailflow-test.db")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "text")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/mailflow-test.db", cfg.DataPath)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects an empty data path", func(t *testing.T) {
		cfg := &Config{LogFormat: "json"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects an unknown log format", func(t *testing.T) {
		cfg := &Config{DataPath: "/tmp/mailflow.db", LogFormat: "yaml"}
		assert.Error(t, cfg.Validate())
	})
}
