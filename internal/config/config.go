// Package config loads and validates pydex configuration from
// .pydex/config.yaml, falling back to defaults when no file exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the pydex configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the pydex configuration directory.
const ConfigDirName = ".pydex"

// Config holds all pydex configuration.
type Config struct {
	Extract ExtractConfig `yaml:"extract"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// ExtractConfig holds configuration for package extraction.
type ExtractConfig struct {
	// Package is the default package to extract when none is given on
	// the command line.
	Package string `yaml:"package"`
	// Roots are search roots probed before the environment search path.
	Roots []string `yaml:"roots"`
}

// OutputConfig holds configuration for the serialized document tree.
type OutputConfig struct {
	// Dir is the target directory for JSON documents.
	Dir string `yaml:"dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .pydex/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking
// up the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(filepath.Join(configDir, ConfigFileName))
}

// LoadFromPath reads config from a specific path, merges it with defaults
// and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigDir searches for a .pydex directory starting at workDir and
// walking up to the filesystem root.
func FindConfigDir(workDir string) (string, error) {
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ConfigDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory found above %s", ConfigDirName, workDir)
		}
		dir = parent
	}
}

// Validate checks a config for invalid values.
func Validate(cfg *Config) error {
	if cfg.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir must not be empty", ErrInvalidConfig)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be one of debug, info, warn, error (got %q)", ErrInvalidConfig, cfg.Log.Level)
	}
	return nil
}

// Save writes the config as YAML to the given path, creating the parent
// directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
