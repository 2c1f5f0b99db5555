// Package cache stores rendered collages so repeated headless renders and
// preview requests skip decoding and painting.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for a
// shared preview server and [NullCache] to disable caching. Keys come from
// a [Keyer], which hashes everything that affects the output (layout,
// aspect, style, photo files and their modification times) so stale entries
// are never served.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (false) with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	RenderTTL = 7 * 24 * time.Hour
	LayoutTTL = 30 * 24 * time.Hour
)

// SourceStamp identifies one version of a photo file.
type SourceStamp struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// RenderKeyOpts lists everything that changes a rendered collage.
type RenderKeyOpts struct {
	Layout     string        `json:"layout"`
	Aspect     string        `json:"aspect"`
	Radius     float64       `json:"radius"`
	Background string        `json:"background"`
	Format     string        `json:"format"`
	Thumb      int           `json:"thumb,omitempty"`
	Scale      float64       `json:"scale,omitempty"`
	Project    string        `json:"project,omitempty"`
	Sources    []SourceStamp `json:"sources"`
}

// LayoutKeyOpts lists everything that changes a layout preview.
type LayoutKeyOpts struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey keys a rendered collage.
	RenderKey(opts RenderKeyOpts) string
	// LayoutKey keys a rendered layout preview (DOT, SVG or wireframe).
	LayoutKey(layout string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes options into "render:<sha256>" and "layout:<sha256>"
// keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(opts RenderKeyOpts) string {
	return hashKey("render", opts)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(layout string, opts LayoutKeyOpts) string {
	return hashKey(fmt.Sprintf("layout:%s", layout), opts)
}
