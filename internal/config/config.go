// Package config holds the golisting CLI configuration: YAML file
// settings with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFile = ".golisting.yaml"

// Config holds all golisting configuration.
type Config struct {
	// Cell splitting
	Cells CellsConfig `yaml:"cells"`

	// Snippet execution
	Run RunConfig `yaml:"run"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// CellsConfig configures cell segmentation.
type CellsConfig struct {
	// Pattern overrides the default cell delimiter pattern. Empty
	// means the built-in notebook-export marker.
	Pattern string `yaml:"pattern"`
}

// RunConfig configures snippet execution.
type RunConfig struct {
	// Echo forwards captured output to the real output channels while
	// it is being recorded.
	Echo bool `yaml:"echo"`

	// SourceName overrides the synthetic file identifier on attributed
	// writes. Empty means the runner default.
	SourceName string `yaml:"source_name"`
}

// LoggingConfig configures diagnostics.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Run: RunConfig{Echo: true},
	}
}

// Load reads configuration from a YAML file, overlaying the defaults,
// then applies environment overrides. An empty path means DefaultFile;
// a missing default file is not an error, an explicitly named missing
// file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, uerr)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if pattern := os.Getenv("GOLISTING_CELL_PATTERN"); pattern != "" {
		c.Cells.Pattern = pattern
	}
	if name := os.Getenv("GOLISTING_SOURCE_NAME"); name != "" {
		c.Run.SourceName = name
	}
	if v := os.Getenv("GOLISTING_ECHO"); v != "" {
		if echo, err := strconv.ParseBool(v); err == nil {
			c.Run.Echo = echo
		}
	}
	if v := os.Getenv("GOLISTING_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = debug
		}
	}
}

// Validate rejects configurations that cannot work, surfacing them at
// load time rather than mid-run.
func (c *Config) Validate() error {
	if c.Cells.Pattern != "" {
		if _, err := regexp.Compile(c.Cells.Pattern); err != nil {
			return fmt.Errorf("invalid cell pattern %q: %w", c.Cells.Pattern, err)
		}
	}
	return nil
}
