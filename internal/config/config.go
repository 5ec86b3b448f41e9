// Package config loads the CLI's YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/snakeoil/chksum"
	"github.com/bjaus/snakeoil/internal/report"
)

// ErrInvalidConfig is returned for a config file that parses but holds
// unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var colorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Config holds the CLI settings. Flags override these values.
type Config struct {
	// Width is the wrap width; 0 means the terminal width or 79.
	Width    int    `yaml:"width"`
	Encoding string `yaml:"encoding"`
	Color    string `yaml:"color"`
	Format   string `yaml:"format"`
	// Chksums lists the checksum handlers the chksum command computes by
	// default.
	Chksums  []string `yaml:"chksums"`
	Parallel bool     `yaml:"parallel"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Color:    ColorAuto,
		Format:   string(report.Table),
		Chksums:  []string{"size", "sha256", "blake2b"},
		Parallel: true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/snakeoil/config.yaml, falling back
// to the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "snakeoil", "config.yaml")
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := decodeKnownFields(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeKnownFields(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		// An empty document leaves the defaults.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("multiple YAML documents are not supported")
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalidConfig, c.Width)
	}
	if !slices.Contains(colorModes, c.Color) {
		return fmt.Errorf("%w: color %q (valid: %v)", ErrInvalidConfig, c.Color, colorModes)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Chksums) == 0 {
		return fmt.Errorf("%w: chksums must not be empty", ErrInvalidConfig)
	}
	for _, name := range c.Chksums {
		if _, err := chksum.Get(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
