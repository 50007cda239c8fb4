package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds process-level settings for the host simulator binary.
// Application configuration (AI provider, UI preferences) is not here;
// it lives behind the command boundary and is served by the host.
type Config struct {
	DataPath  string
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DataPath:  getEnv("DATA_PATH", defaultDataPath()),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
	return cfg, nil
}

// defaultDataPath places the simulator database under the user config
// directory, falling back to the working directory
func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("mailflow", "hostsim.db")
	}
	return filepath.Join(dir, "mailflow", "hostsim.db")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("DATA_PATH is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
