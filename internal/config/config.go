// Package config loads client settings from ~/.cineai/config.yaml, a .env
// file and CINEAI_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultEndpoint = "http://localhost:8000"
	DefaultTimeout  = 30 * time.Second
	DefaultStubAddr = ":8000"
)

// Environment variable names.
const (
	EnvHome     = "CINEAI_HOME"
	EnvEndpoint = "CINEAI_ENDPOINT"
	EnvTimeout  = "CINEAI_TIMEOUT"
	EnvLogFile  = "CINEAI_LOG_FILE"
	EnvStubAddr = "CINEAI_STUB_ADDR"
)

// Config holds application configuration.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	LogFile  string        `yaml:"log_file"`

	Stub struct {
		Addr        string `yaml:"addr"`
		CatalogPath string `yaml:"catalog_path"`
	} `yaml:"stub"`
}

// Dir returns the configuration directory, honoring CINEAI_HOME.
func Dir() (string, error) {
	base := os.Getenv(EnvHome)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = home
	}
	return filepath.Join(base, ".cineai"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path (a missing file is not an error),
// loads .env from the working directory when present, then applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("decode config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvStubAddr); v != "" {
		c.Stub.Addr = v
	}
	return nil
}

func (c *Config) applyDefaults() error {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogFile == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.LogFile = filepath.Join(dir, "cineai.log")
	}
	if c.Stub.Addr == "" {
		c.Stub.Addr = DefaultStubAddr
	}
	return nil
}
