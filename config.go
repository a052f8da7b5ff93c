package grasp

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that reads and writes TOML strings such as
// "250ms" or "1.5s".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("grasp: duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// WindowConfig is the [window] table.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// DragConfig is the [drag] table.
type DragConfig struct {
	Inertia  bool    `toml:"inertia"`
	Friction float64 `toml:"friction"`
}

// HoldConfig is the [hold] table.
type HoldConfig struct {
	HoldDelay     Duration `toml:"hold_delay"`
	ActivateDelay Duration `toml:"activate_delay"`
	MoveTolerance float64  `toml:"move_tolerance"`
}

// Config holds the tunables of a scene and its gestures.
//
//	tps = 60
//	debug = false
//
//	[window]
//	title = "grasp"
//	width = 640
//	height = 480
//
//	[drag]
//	inertia = true
//	friction = 40.0
//
//	[hold]
//	hold_delay = "300ms"
//	activate_delay = "1s"
//	move_tolerance = 5.0
type Config struct {
	TPS    int          `toml:"tps"`
	Debug  bool         `toml:"debug"`
	Window WindowConfig `toml:"window"`
	Drag   DragConfig   `toml:"drag"`
	Hold   HoldConfig   `toml:"hold"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TPS: defaultTPS,
		Window: WindowConfig{
			Title:  "grasp",
			Width:  640,
			Height: 480,
		},
		Drag: DragConfig{
			Inertia:  true,
			Friction: 40,
		},
		Hold: HoldConfig{
			HoldDelay:     Duration{300 * time.Millisecond},
			ActivateDelay: Duration{time.Second},
			MoveTolerance: defaultHoldMoveTolerance,
		},
	}
}

// DecodeConfig parses TOML data on top of DefaultConfig, so keys missing from
// data keep their defaults.
func DecodeConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("grasp: decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		Logger().Warn("unknown config keys", "keys", fmt.Sprint(undecoded))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("grasp: load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		Logger().Warn("unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("grasp: load config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig encodes cfg as TOML and writes it to path.
func WriteConfig(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("grasp: encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("grasp: write config %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	switch {
	case c.TPS <= 0:
		return fmt.Errorf("grasp: tps must be positive, got %d", c.TPS)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("grasp: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Drag.Inertia && c.Drag.Friction == 0:
		return fmt.Errorf("grasp: drag friction must not be 0 with inertia on, inertia would never stop")
	case c.Hold.HoldDelay.Duration < 0 || c.Hold.ActivateDelay.Duration < c.Hold.HoldDelay.Duration:
		return fmt.Errorf("grasp: hold delays must satisfy 0 <= hold_delay <= activate_delay, got %s and %s",
			c.Hold.HoldDelay.Duration, c.Hold.ActivateDelay.Duration)
	case c.Hold.MoveTolerance < 0:
		return fmt.Errorf("grasp: move_tolerance must not be negative, got %g", c.Hold.MoveTolerance)
	}
	return nil
}

// DragOptions returns drag options carrying the [drag] settings. Callbacks
// are left for the caller to fill in.
func (c Config) DragOptions() DragOptions {
	return DragOptions{
		Inertia:  c.Drag.Inertia,
		Friction: c.Drag.Friction,
	}
}

// HoldOptions returns hold options carrying the [hold] settings. Callbacks
// are left for the caller to fill in.
func (c Config) HoldOptions() HoldOptions {
	return HoldOptions{
		HoldDelay:     c.Hold.HoldDelay.Duration,
		ActivateDelay: c.Hold.ActivateDelay.Duration,
		MoveTolerance: c.Hold.MoveTolerance,
	}
}

// RunConfig returns the window settings for Run.
func (c Config) RunConfig() RunConfig {
	return RunConfig{
		Title:  c.Window.Title,
		Width:  c.Window.Width,
		Height: c.Window.Height,
		TPS:    c.TPS,
	}
}
