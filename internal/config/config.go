package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultStorageBudget = 5 * 1024 * 1024

// Config models sheriff.yml.
type Config struct {
	Officer Officer `yaml:"officer"`
	Storage struct {
		BudgetBytes int64 `yaml:"budget_bytes"`
	} `yaml:"storage"`
	Sync struct {
		URL             string `yaml:"url"`
		IntervalSeconds int    `yaml:"interval_seconds"`
		TimeoutSeconds  int    `yaml:"timeout_seconds"`
	} `yaml:"sync"`
	Server struct {
		Addr     string `yaml:"addr"`
		BasePath string `yaml:"base_path"`
	} `yaml:"server"`
	Geo struct {
		FixURL string `yaml:"fix_url"`
	} `yaml:"geo"`
}

type Officer struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Badge string `yaml:"badge"`
	Zone  string `yaml:"zone"`
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Officer.ID == "" {
		return fmt.Errorf("config.officer.id is required")
	}
	if c.Storage.BudgetBytes < 0 {
		return fmt.Errorf("config.storage.budget_bytes must not be negative")
	}
	if c.Sync.IntervalSeconds < 0 {
		return fmt.Errorf("config.sync.interval_seconds must not be negative")
	}
	if c.Sync.TimeoutSeconds < 0 {
		return fmt.Errorf("config.sync.timeout_seconds must not be negative")
	}
	return nil
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "sheriff.yml")
}

// Default returns the default Config for an officer.
func Default(officerID string) *Config {
	var cfg Config
	cfg.Officer.ID = officerID
	cfg.Officer.Name = officerID
	cfg.Storage.BudgetBytes = defaultStorageBudget
	cfg.Sync.IntervalSeconds = 2
	cfg.Sync.TimeoutSeconds = 5
	cfg.Server.Addr = "127.0.0.1:8321"
	cfg.Server.BasePath = "/v0"
	return &cfg
}

// Load reads config from the workspace, falling back to defaults when the
// file does not exist.
func Load(workspace, officerID string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(officerID), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}
