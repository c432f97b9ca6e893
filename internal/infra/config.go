package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every application setting. Values come from defaults,
// then the YAML file, then environment variables, then CLI flags —
// later sources win.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Replay struct {
		Output      string `yaml:"output"`       // mbp csv destination
		ArchivePath string `yaml:"archive_path"` // optional sqlite sink
		DumpPath    string `yaml:"dump_path"`    // optional final book dump
	} `yaml:"replay"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "mbp10"
	cfg.App.Version = "dev"
	cfg.Replay.Output = "mbp_output.csv"
	cfg.Logging.Level = "info"
	return &cfg
}

// LoadConfig reads and parses the config file, then applies env
// overrides. An empty path means "defaults only".
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Replay.Output == "" {
		return fmt.Errorf("replay output path is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Logging.Level)
	}
	return nil
}

// overrideWithEnv applies environment variables over file values.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("MBP_OUTPUT"); v != "" {
		cfg.Replay.Output = v
	}
	if v := os.Getenv("MBP_ARCHIVE_PATH"); v != "" {
		cfg.Replay.ArchivePath = v
	}
	if v := os.Getenv("MBP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// ResolveConfigPath returns the default config file location if one
// exists, otherwise empty (run on defaults).
func ResolveConfigPath() string {
	path := filepath.Join("configs", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
