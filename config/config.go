package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go-ledfield/geom"
	"go-ledfield/settings"
	"go-ledfield/sink"
)

const (
	EnvAddress = "LEDFIELD_ADDRESS"
	EnvPixels  = "LEDFIELD_PIXELS"
)

// Config is the startup configuration. Intervals are in milliseconds.
type Config struct {
	Address          string `json:"address"`
	PixelCount       int    `json:"pixelCount"`
	UpdateInterval   int    `json:"updateInterval"`
	TransmitInterval int    `json:"transmitInterval"`

	LayoutPath   string `json:"layoutPath,omitempty"`
	SettingsPath string `json:"settingsPath,omitempty"`
	PalettePath  string `json:"palettePath,omitempty"`

	MaxConsecutiveFailures   int  `json:"maxConsecutiveFailures"`
	PauseUpdatesWhenDisabled bool `json:"pauseUpdatesWhenDisabled,omitempty"`
	DryRun                   bool `json:"dryRun,omitempty"`

	// Bounds overrides the fixture volume. Zero means use the layout's
	// bounds, or the default fixture volume without a layout.
	Bounds geom.Box `json:"bounds,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Address:                "192.168.1.40:4048",
		PixelCount:             800,
		UpdateInterval:         10,
		TransmitInterval:       50,
		SettingsPath:           settings.DefaultFile,
		MaxConsecutiveFailures: 20,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-ledfield"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default location, or returns defaults if
// not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. Fields missing from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddress); ok && v != "" {
		c.Address = v
	}
	if v, ok := lookup(EnvPixels); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &FieldError{Field: EnvPixels, Value: v, Reason: "not an integer"}
		}
		c.PixelCount = n
	}
	return nil
}

// RegisterFlags defines the command-line overrides on fs. Defaults are
// zero; ApplyFlags only copies flags that were actually given.
func RegisterFlags(fs *flag.FlagSet) {
	fs.String("address", "", "fixture address (host or host:port)")
	fs.Int("pixels", 0, "number of pixels")
	fs.Int("update-ms", 0, "update interval in milliseconds")
	fs.Int("transmit-ms", 0, "transmit interval in milliseconds")
	fs.String("layout", "", "pixel layout file")
	fs.String("settings", "", "settings INI file")
	fs.String("palette", "", "GIMP palette for the UI")
	fs.Int("max-failures", 0, "consecutive transmit failures tolerated")
	fs.Bool("pause-updates", false, "pause effect updates while transmit is disabled")
	fs.Bool("dry-run", false, "render without a fixture")
}

// ApplyFlags copies every explicitly set flag registered by RegisterFlags.
func (c *Config) ApplyFlags(fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		v := g.Get()
		switch f.Name {
		case "address":
			c.Address = v.(string)
		case "pixels":
			c.PixelCount = v.(int)
		case "update-ms":
			c.UpdateInterval = v.(int)
		case "transmit-ms":
			c.TransmitInterval = v.(int)
		case "layout":
			c.LayoutPath = v.(string)
		case "settings":
			c.SettingsPath = v.(string)
		case "palette":
			c.PalettePath = v.(string)
		case "max-failures":
			c.MaxConsecutiveFailures = v.(int)
		case "pause-updates":
			c.PauseUpdatesWhenDisabled = v.(bool)
		case "dry-run":
			c.DryRun = v.(bool)
		}
	})
}

// FieldError reports a config value that cannot be used.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config %s=%q: %s", e.Field, e.Value, e.Reason)
}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, value any, reason string) {
		errs = append(errs, &FieldError{Field: field, Value: fmt.Sprint(value), Reason: reason})
	}

	if !c.DryRun {
		if _, err := sink.NormalizeAddr(c.Address); err != nil {
			bad("address", c.Address, err.Error())
		}
	}
	if c.PixelCount <= 0 {
		bad("pixelCount", c.PixelCount, "must be positive")
	}
	if c.UpdateInterval <= 0 {
		bad("updateInterval", c.UpdateInterval, "must be positive")
	}
	if c.TransmitInterval <= 0 {
		bad("transmitInterval", c.TransmitInterval, "must be positive")
	}
	if c.MaxConsecutiveFailures < 0 {
		bad("maxConsecutiveFailures", c.MaxConsecutiveFailures, "must not be negative")
	}
	if !c.Bounds.IsZero() {
		s := c.Bounds.Size()
		if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
			bad("bounds", c.Bounds, "must have positive extent on every axis")
		}
	}
	return errors.Join(errs...)
}

func (c *Config) UpdateEvery() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Millisecond
}

func (c *Config) TransmitEvery() time.Duration {
	return time.Duration(c.TransmitInterval) * time.Millisecond
}
