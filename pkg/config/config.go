// Package config handles configuration loading and validation for pbrew.
// It supports a YAML-based configuration file (.pbrew.yml) that controls the
// concurrency bound, the batch size, and the Homebrew binary to invoke.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pbrew/pkg/engine"
	"github.com/ajxudir/pbrew/pkg/verbose"
)

// DefaultConfigFile is the config file name looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = ".pbrew.yml"

// Config holds the runtime settings shared by all commands.
//
// Fields:
//   - Jobs: Maximum concurrent Homebrew invocations during parallel phases
//   - BatchSize: Maximum package names per install/reinstall invocation
//   - Brew: The Homebrew binary name or path
type Config struct {
	// Jobs bounds how many Homebrew invocations run concurrently.
	Jobs int `yaml:"jobs"`

	// BatchSize caps how many packages a single install or reinstall
	// invocation covers.
	BatchSize int `yaml:"batch_size"`

	// Brew is the binary invoked for every operation.
	Brew string `yaml:"brew"`
}

// DefaultConfig returns the built-in configuration.
//
// Returns:
//   - *Config: Defaults of 4 concurrent jobs, batches of 10, binary "brew"
func DefaultConfig() *Config {
	return &Config{
		Jobs:      engine.DefaultJobs,
		BatchSize: engine.DefaultBatchSize,
		Brew:      "brew",
	}
}

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file and fails if
// the file is unreadable or invalid. Otherwise it looks for .pbrew.yml in the
// working directory, and falls back to the built-in defaults when no file is
// found. Fields missing from the file keep their default values.
//
// Parameters:
//   - configPath: Path to the config file, or empty to use defaults
//   - workDir: Working directory searched for .pbrew.yml
//
// Returns:
//   - *Config: The loaded and validated configuration
//   - error: Any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := DefaultConfig()

	path := configPath
	if path == "" {
		local := filepath.Join(workDir, DefaultConfigFile)
		if _, err := os.Stat(local); err == nil {
			path = local
		}
	}

	if path != "" {
		verbose.Infof("Loading config from: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
//
// Returns:
//   - error: A descriptive error for the first invalid field, nil when valid
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", c.BatchSize)
	}
	if c.Brew == "" {
		return fmt.Errorf("brew binary must not be empty")
	}
	return nil
}
