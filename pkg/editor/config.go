package editor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/scene"
)

// Config holds every editor setting. It is passed explicitly to whatever
// needs it; there is no package-level state.
type Config struct {
	// FrameRadius is the corner radius (and border width) of every frame.
	FrameRadius float64 `toml:"frame_radius"`
	// MaxFrameRadius bounds FrameRadius when growing it with "+".
	MaxFrameRadius float64 `toml:"max_frame_radius"`

	// OutputPath is where "s" saves. Empty means "ask".
	OutputPath string `toml:"output_path"`
	// LastDirectory seeds the path prompt.
	LastDirectory string `toml:"last_directory"`

	// Layout is the startup layout, as a descriptor or preset name.
	Layout string `toml:"layout"`
	// Aspect is the startup aspect ratio ("W:H").
	Aspect string `toml:"aspect"`
	// Background is the canvas color as #rrggbb.
	Background string `toml:"background"`

	// DragStartDistance is the Manhattan distance a secondary-button drag
	// must travel before it becomes a swap.
	DragStartDistance float64 `toml:"drag_start_distance"`

	// RotationStep is the rotation change per wheel tick, in degrees.
	RotationStep float64 `toml:"rotation_step"`
	// ScaleStep is the scale change per wheel tick.
	ScaleStep float64 `toml:"scale_step"`
	// FineScaleStep replaces ScaleStep near the lower scale bound.
	FineScaleStep float64 `toml:"fine_scale_step"`
	// MaxZoom caps the scale reachable with the wheel.
	MaxZoom float64 `toml:"max_zoom"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		FrameRadius:       15,
		MaxFrameRadius:    60,
		OutputPath:        "out.png",
		Layout:            layout.Presets[layout.DefaultPreset].Descriptor.String(),
		Aspect:            scene.DefaultAspectRatio.String(),
		Background:        "#e8e8e8",
		DragStartDistance: 10,
		RotationStep:      5,
		ScaleStep:         0.05,
		FineScaleStep:     0.01,
		MaxZoom:           2,
	}
}

// Validate checks ranges and parses the textual fields.
func (c Config) Validate() error {
	if c.FrameRadius < 0 || c.MaxFrameRadius < 0 || c.FrameRadius > c.MaxFrameRadius {
		return errors.New(errors.ErrCodeInvalidInput, "frame_radius must be within [0, max_frame_radius]")
	}
	if c.ScaleStep <= 0 || c.FineScaleStep <= 0 || c.FineScaleStep > c.ScaleStep {
		return errors.New(errors.ErrCodeInvalidInput, "scale steps must satisfy 0 < fine_scale_step <= scale_step")
	}
	if c.MaxZoom <= c.FineScaleStep {
		return errors.New(errors.ErrCodeInvalidInput, "max_zoom must exceed fine_scale_step")
	}
	if c.DragStartDistance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "drag_start_distance cannot be negative")
	}
	if _, err := layout.Parse(c.LayoutSpec()); err != nil {
		return err
	}
	if _, err := scene.ParseAspectRatio(c.Aspect); err != nil {
		return err
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	if c.OutputPath != "" {
		if err := errors.ValidateOutputPath(c.OutputPath); err != nil {
			return err
		}
	}
	return nil
}

// LayoutSpec resolves preset names to descriptors.
func (c Config) LayoutSpec() string {
	if i := layout.FindPreset(c.Layout); i >= 0 {
		return layout.Presets[i].Descriptor.String()
	}
	return c.Layout
}

// MinScale is the smallest scale the wheel can reach.
func (c Config) MinScale() float64 { return c.FineScaleStep }

// Style returns the painting style implied by the config.
func (c Config) Style() scene.Style {
	st := scene.DefaultStyle(c.FrameRadius)
	if bg, err := ParseColor(c.Background); err == nil {
		st.Background = bg
	}
	return st
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidInput, "color must be #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ConfigPath returns $XDG_CONFIG_HOME/collage/config.toml, falling back to
// ~/.config.
func ConfigPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "collage", "config.toml"), nil
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
