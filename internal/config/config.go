package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

type Config struct {
	Storage Storage `yaml:"storage"`
	// OverdueInterval is how often overdue tasks are looked for
	OverdueInterval time.Duration `yaml:"overdue_interval"`
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Storage: Storage{
			Backend: BackendJSON,
			Path:    "./tasks.json",
			Key:     "kanban-tasks",
		},
		OverdueInterval: time.Minute,
		LogLevel:        "info",
		LogFile:         "./taskboard.log",
	}
}

// Load reads the yaml file at path on top of the defaults, then applies
// environment overrides (a .env file is read if present). A missing config
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env is optional, a broken one is not
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setString("TASKBOARD_STORAGE", &c.Storage.Backend)
	setString("TASKBOARD_STORAGE_PATH", &c.Storage.Path)
	setString("TASKBOARD_STORAGE_KEY", &c.Storage.Key)
	setString("TASKBOARD_LOG_LEVEL", &c.LogLevel)
	setString("TASKBOARD_LOG_FILE", &c.LogFile)
	if v, ok := os.LookupEnv("TASKBOARD_OVERDUE_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TASKBOARD_OVERDUE_INTERVAL: %w", err)
		}
		c.OverdueInterval = d
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("storage path is required")
	}
	if c.Storage.Key == "" {
		return errors.New("storage key is required")
	}
	if c.OverdueInterval <= 0 {
		return errors.New("overdue interval must be positive")
	}
	return nil
}
