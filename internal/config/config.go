// Package config provides viewer configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Color mode values for DisplayConfig.Color.
const (
	ColorAuto   = "auto"   // Color when stdout is a terminal and NO_COLOR is unset
	ColorAlways = "always" // Force color
	ColorNever  = "never"  // Force plain text
)

// Config represents the viewer configuration.
type Config struct {
	Display DisplayConfig `toml:"display"`
}

// DisplayConfig contains transcript rendering settings.
type DisplayConfig struct {
	Width int    `toml:"width"` // Soft-wrap width (<=0 disables wrapping)
	Color string `toml:"color"` // auto|always|never
	Pager bool   `toml:"pager"` // Use interactive pager when stdout is a TTY
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		Display: DisplayConfig{
			Width: 100,
			Color: ColorAuto,
			Pager: true,
		},
	}
}

// Default returns a default configuration.
func Default() *Config {
	return New()
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads configuration from convview.toml in the current
// directory, falling back to defaults when the file does not exist.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, "convview.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// ColorEnabled resolves the configured color mode against the runtime
// environment. isTerminal reports whether stdout is a TTY; the probe is
// injected so rendering stays testable without a real terminal.
func (c *Config) ColorEnabled(isTerminal bool) bool {
	switch c.Display.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
			return false
		}
		return isTerminal
	}
}
