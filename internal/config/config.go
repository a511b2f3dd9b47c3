package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Input source selection.
const (
	SourceAuto     = "auto"
	SourceEvdev    = "evdev"
	SourceTerminal = "terminal"
)

// Config represents ~/.keyview/config.toml.
type Config struct {
	Source        string   `toml:"source"`
	FPS           int      `toml:"fps"`
	UnitWidth     int      `toml:"unit_width"` // terminal cells per key unit
	KeyHeight     int      `toml:"key_height"` // terminal rows per key
	TapHoldMS     int      `toml:"tap_hold_ms"`
	ActiveColor   string   `toml:"active_color"`
	InactiveColor string   `toml:"inactive_color"`
	LayoutFile    string   `toml:"layout_file,omitempty"`
	Devices       []string `toml:"devices,omitempty"`
	LogPath       string   `toml:"log_path,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source:        SourceAuto,
		FPS:           60,
		UnitWidth:     6,
		KeyHeight:     4,
		TapHoldMS:     150,
		ActiveColor:   "green",
		InactiveColor: "white",
	}
}

// Load reads config from the given path on top of the defaults.
// Returns an error if the file is missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path, falling back to the defaults when the file does not
// exist. Other read or decode errors are returned.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains([]string{SourceAuto, SourceEvdev, SourceTerminal}, c.Source) {
		return fmt.Errorf("source %q: want auto, evdev or terminal", c.Source)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps %d: want 1..240", c.FPS)
	}
	if c.UnitWidth < 3 {
		return fmt.Errorf("unit_width %d: want at least 3", c.UnitWidth)
	}
	if c.KeyHeight < 3 {
		return fmt.Errorf("key_height %d: want at least 3", c.KeyHeight)
	}
	if c.TapHoldMS < 0 {
		return fmt.Errorf("tap_hold_ms %d: must not be negative", c.TapHoldMS)
	}
	if _, err := ParseColor(c.ActiveColor); err != nil {
		return fmt.Errorf("active_color: %w", err)
	}
	if _, err := ParseColor(c.InactiveColor); err != nil {
		return fmt.Errorf("inactive_color: %w", err)
	}
	return nil
}

// FrameInterval is the time between two frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// TapHold is how long a terminal key event keeps a key highlighted.
func (c *Config) TapHold() time.Duration {
	return time.Duration(c.TapHoldMS) * time.Millisecond
}

// ParseColor accepts W3C color names and #rrggbb.
func ParseColor(s string) (tcell.Color, error) {
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}
