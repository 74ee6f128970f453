// Package config handles loading and saving nodelens configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/nodelens/config.yaml
//   - State:   ~/.local/state/nodelens/ (snapshots, session state)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OverlayConfig holds exploration overlay settings.
type OverlayConfig struct {
	MutedColor      string `yaml:"muted_color,omitempty"`      // Color for dimmed nodes
	AnimateDuration int    `yaml:"animate_duration,omitempty"` // Camera move duration in milliseconds
}

// SnapshotConfig controls static snapshot export.
type SnapshotConfig struct {
	Format string `yaml:"format,omitempty"` // "svg" or "png"
	Dir    string `yaml:"dir,omitempty"`    // Output directory; state dir when empty
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// WatchConfig controls live reload of the graph file.
type WatchConfig struct {
	Enabled    *bool `yaml:"enabled,omitempty"`     // nil means enabled
	DebounceMS int   `yaml:"debounce_ms,omitempty"` // Delay before reloading after a change
}

// Config is the top-level configuration for nodelens.
type Config struct {
	Overlay  OverlayConfig  `yaml:"overlay,omitempty"`
	Snapshot SnapshotConfig `yaml:"snapshot,omitempty"`
	Watch    WatchConfig    `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Overlay: OverlayConfig{
			MutedColor:      "#f6f6f6",
			AnimateDuration: 500,
		},
		Snapshot: SnapshotConfig{
			Format: "svg",
		},
		Watch: WatchConfig{
			DebounceMS: 300,
		},
	}
}

// WatchEnabled reports whether live reload is on; it defaults to on.
func (c Config) WatchEnabled() bool {
	return c.Watch.Enabled == nil || *c.Watch.Enabled
}

// ConfigDir returns the XDG config directory for nodelens.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "nodelens")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "nodelens")
}

// StateDir returns the XDG state directory for nodelens.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "nodelens")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "nodelens")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Snapshot.Dir = expandHome(cfg.Snapshot.Dir)
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SnapshotDir returns the directory snapshots are written to.
func (c Config) SnapshotDir() string {
	if c.Snapshot.Dir != "" {
		return c.Snapshot.Dir
	}
	if dir := StateDir(); dir != "" {
		return filepath.Join(dir, "snapshots")
	}
	return "."
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
