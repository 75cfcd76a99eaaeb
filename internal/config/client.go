package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
)

// ClientConfig holds the terminal client configuration
type ClientConfig struct {
	ServerURL   string        `env:"COMEBACK_SERVER_URL" envDefault:"http://localhost:8080"`
	StoragePath string        `env:"COMEBACK_STORAGE_PATH"`
	Retries     int           `env:"COMEBACK_RETRIES" envDefault:"2"`
	RetryDelay  time.Duration `env:"COMEBACK_RETRY_DELAY" envDefault:"1s"`
}

// LoadClient parses the client configuration from the environment
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = defaultStoragePath()
	}
	return cfg, nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".comeback", "storage.json")
	}
	return filepath.Join(home, ".comeback", "storage.json")
}
