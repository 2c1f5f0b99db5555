// Package pipeline provides the headless collage pipeline.
//
// This package implements the build → render sequence shared by the
// "collage render" command, its --watch loop and the preview server, so all
// entry points produce identical output and share one cache.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: expand photo sources, compute the layout and fill a
//     [scene.Scene] (optionally restoring a saved project).
//  2. Render: flatten the scene and encode it in each requested format
//     (png, jpg, gif, and a JPEG thumbnail).
//
// Rendered bytes are cached under a key derived from every input that
// affects them, including each photo's size and modification time.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Layout:  "columns:3/2B/3",
//	    Sources: []string{"photos/"},
//	    Formats: []string{"png", "thumb"},
//	})
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collage/pkg/cache"
	"github.com/matzehuels/collage/pkg/editor"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	// DefaultRadius is the frame corner radius.
	DefaultRadius = 15.0

	// DefaultBackground is the canvas color.
	DefaultBackground = "#e8e8e8"

	// DefaultThumbSize is the longest thumbnail edge in pixels.
	DefaultThumbSize = 256
)

// DefaultLayout is the layout used when none is given (Grid 3x3).
var DefaultLayout = layout.Presets[layout.DefaultPreset].Descriptor.String()

// DefaultAspect is the aspect ratio used when none is given.
var DefaultAspect = scene.DefaultAspectRatio.String()

// Format constants for output formats.
const (
	FormatPNG   = "png"
	FormatJPEG  = "jpg"
	FormatGIF   = "gif"
	FormatThumb = "thumb"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:   true,
	FormatJPEG:  true,
	"jpeg":      true,
	FormatGIF:   true,
	FormatThumb: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Build options
	Layout  string   `json:"layout,omitempty"`
	Aspect  string   `json:"aspect,omitempty"`
	Sources []string `json:"sources,omitempty"`
	Project string   `json:"project,omitempty"` // project file; overrides layout, aspect and sources
	Refresh bool     `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Radius     *float64 `json:"radius,omitempty"`
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	ThumbSize  int      `json:"thumb_size,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the built scene. It is nil when every artifact came from
	// the cache.
	Scene *scene.Scene

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Frames     int
	Sources    int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpg, gif, thumb)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Aspect == "" {
		o.Aspect = DefaultAspect
	}
	if o.Radius == nil {
		r := DefaultRadius
		o.Radius = &r
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.ThumbSize == 0 {
		o.ThumbSize = DefaultThumbSize
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateLayoutSpec(o.Layout); err != nil {
		return err
	}
	if _, err := layout.Parse(o.Layout); err != nil {
		return err
	}
	if _, err := scene.ParseAspectRatio(o.Aspect); err != nil {
		return err
	}
	if *o.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "radius cannot be negative")
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale cannot be negative")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := o.Style(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Style returns the painting style for the options.
func (o *Options) Style() (scene.Style, error) {
	st := scene.DefaultStyle(DefaultRadius)
	if o.Radius != nil {
		st.Radius = *o.Radius
	}
	if o.Background != "" {
		bg, err := editor.ParseColor(o.Background)
		if err != nil {
			return st, err
		}
		st.Background = bg
	}
	return st, nil
}

// RenderKeyOpts returns cache key options for the run. Photo files are
// stamped with their size and modification time.
func (o *Options) RenderKeyOpts(format string, sources []string) cache.RenderKeyOpts {
	k := cache.RenderKeyOpts{
		Layout:     o.Layout,
		Aspect:     o.Aspect,
		Background: o.Background,
		Format:     format,
		Scale:      o.Scale,
		Sources:    cache.Stamps(sources),
	}
	if o.Radius != nil {
		k.Radius = *o.Radius
	}
	if format == FormatThumb {
		k.Thumb = o.ThumbSize
	}
	if o.Project != "" {
		s := cache.Stamp(o.Project)
		k.Project = fmt.Sprintf("%s@%d:%d", s.Path, s.Size, s.ModTime.UnixNano())
	}
	return k
}
