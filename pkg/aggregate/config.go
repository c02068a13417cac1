// File: pkg/aggregate/config.go
package aggregate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the behavior of running with no configuration at all.
const (
	DefaultSuffix     = ".ts"
	DefaultMaxDepth   = 1
	DefaultOutputName = "source.txt"
)

// Config holds the recognized options of an aggregation run.
type Config struct {
	Suffix     string   `yaml:"suffix"`      // Case-sensitive file name suffix to collect.
	MaxDepth   int      `yaml:"max_depth"`   // Deepest directory level scanned; the start directory is 0.
	OutputName string   `yaml:"output_name"` // Output file name, created inside the start directory.
	Ignore     []string `yaml:"ignore"`      // Gitignore-style exclusion patterns.
	IgnoreFile string   `yaml:"ignore_file"` // Optional file of exclusion patterns, relative to the start directory.
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Suffix:     DefaultSuffix,
		MaxDepth:   DefaultMaxDepth,
		OutputName: DefaultOutputName,
	}
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.Suffix == "" {
		return fmt.Errorf("%w: suffix must not be empty", ErrInvalidConfig)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.OutputName == "" {
		return fmt.Errorf("%w: output name must not be empty", ErrInvalidConfig)
	}
	if c.OutputName == "." || c.OutputName == ".." ||
		strings.ContainsRune(c.OutputName, '/') || strings.ContainsRune(c.OutputName, filepath.Separator) {
		return fmt.Errorf("%w: output name %q must be a plain file name", ErrInvalidConfig, c.OutputName)
	}
	return nil
}

// LoadConfigFile reads a YAML configuration file and overlays it on DefaultConfig.
// Keys missing from the file keep their defaults; unknown keys are an error.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
