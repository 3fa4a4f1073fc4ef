package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"stackview/internal/errors"
)

// Config represents the application configuration structure.
// It controls display defaults, playback, and reload behavior.
type Config struct {
	Display struct {
		SeparateChannels  bool `yaml:"separate_channels"`   // Split multi-channel frames into grayscale planes
		WheelScrollsFrame bool `yaml:"wheel_scrolls_frame"` // Mouse wheel steps the frame axis instead of zooming
	} `yaml:"display"`
	Playback struct {
		FPS float64 `yaml:"fps"` // Frames per second while playing
	} `yaml:"playback"`
	Sequence struct {
		Pattern string `yaml:"pattern"` // Glob selecting frame files when opening a directory
	} `yaml:"sequence"`
	Watch struct {
		Reload bool `yaml:"reload"` // Reload the stack when the source changes on disk
	} `yaml:"watch"`
}

// New returns a configuration populated with defaults.
func New() *Config {
	cfg := &Config{}
	cfg.Display.WheelScrollsFrame = true
	cfg.Playback.FPS = 10
	cfg.Sequence.Pattern = "*.{png,jpg,jpeg,gif,tif,tiff}"
	return cfg
}

// LoadConfig loads configuration from the default location
// (~/.config/stackview/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "stackview", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("invalid configuration", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	if c.Playback.FPS <= 0 {
		return errors.NewConfigError("playback fps must be positive", "playback.fps", errors.InvalidConfig, nil)
	}
	if c.Sequence.Pattern == "" {
		return errors.NewConfigError("sequence pattern must not be empty", "sequence.pattern", errors.InvalidConfig, nil)
	}
	return nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", path)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling configuration")
	}
	return os.WriteFile(path, data, 0644)
}
