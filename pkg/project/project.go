// Package project saves and restores collage compositions.
//
// A project file (conventionally *.collage.toml) records the layout, canvas
// aspect ratio, frame radius and photo list, plus the pan, zoom and rotation
// of every frame's photo, so an edit session can be resumed or re-rendered
// headlessly:
//
//	p := project.Capture(sc, aspect, radius)
//	err := p.Save("holiday.collage.toml")
//
//	p, err := project.Load("holiday.collage.toml")
//	err = p.Apply(ctx, sc)
//
// [Bundle] copies a project together with its photos into a directory so it
// can be moved to another machine.
package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/scene"
	"github.com/matzehuels/collage/pkg/source"
)

// Ext is the conventional project file suffix.
const Ext = ".collage.toml"

// Version is the project file format version written by this package.
const Version = 1

// FrameState is the saved state of one frame's photo.
type FrameState struct {
	Index    int        `toml:"index"`
	Source   string     `toml:"source"`
	Pos      geom.Point `toml:"pos"`
	Scale    float64    `toml:"scale"`
	Rotation float64    `toml:"rotation"`
}

// Project is a saved composition.
type Project struct {
	Version int       `toml:"version"`
	ID      string    `toml:"id"`
	Created time.Time `toml:"created"`
	Updated time.Time `toml:"updated"`

	Layout string  `toml:"layout"`
	Aspect string  `toml:"aspect"`
	Radius float64 `toml:"radius"`

	Sources []string     `toml:"sources"`
	Frames  []FrameState `toml:"frame"`

	// dir resolves relative sources; it is the directory the project was
	// loaded from.
	dir string
}

// Capture records the current state of sc.
func Capture(sc *scene.Scene, aspect scene.AspectRatio, radius float64) *Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &Project{
		Version: Version,
		ID:      uuid.NewString(),
		Created: now,
		Updated: now,
		Layout:  sc.Layout().String(),
		Aspect:  aspect.String(),
		Radius:  radius,
		Sources: sc.Sources(),
	}
	for i, f := range sc.Frames() {
		ph := f.Photo()
		if ph == nil {
			continue
		}
		p.Frames = append(p.Frames, FrameState{
			Index:    i,
			Source:   ph.Path,
			Pos:      ph.Pos,
			Scale:    ph.Scale,
			Rotation: ph.Rotation,
		})
	}
	return p
}

// Descriptor parses the saved layout.
func (p *Project) Descriptor() (layout.Descriptor, error) {
	if err := errors.ValidateLayoutSpec(p.Layout); err != nil {
		return layout.Descriptor{}, err
	}
	return layout.Parse(p.Layout)
}

// AspectRatio parses the saved aspect ratio.
func (p *Project) AspectRatio() (scene.AspectRatio, error) {
	return scene.ParseAspectRatio(p.Aspect)
}

// Resolve returns path made absolute against the project's directory.
// Absolute paths and the placeholder are returned unchanged.
func (p *Project) Resolve(path string) string {
	if path == source.PlaceholderPath || filepath.IsAbs(path) || p.dir == "" {
		return path
	}
	return filepath.Join(p.dir, path)
}

// Apply rebuilds sc from the project and restores every saved photo
// transform. Photos that no longer load are left as placeholders (or the
// cycled source) and reported together in the returned error; the rest of
// the project is still applied.
func (p *Project) Apply(ctx context.Context, sc *scene.Scene) error {
	desc, err := p.Descriptor()
	if err != nil {
		return err
	}
	aspect, err := p.AspectRatio()
	if err != nil {
		return err
	}
	sources := make([]string, len(p.Sources))
	for i, s := range p.Sources {
		sources[i] = p.Resolve(s)
	}
	if err := sc.Rebuild(ctx, desc, scene.NewCanvas(scene.DefaultCanvasWidth, aspect), source.OrPlaceholder(sources)); err != nil {
		return err
	}

	frames := sc.Frames()
	var failed []error
	for _, fs := range p.Frames {
		if fs.Index < 0 || fs.Index >= len(frames) {
			continue
		}
		f := frames[fs.Index]
		src := p.Resolve(fs.Source)
		if f.Photo().Path != src {
			if err := sc.ReplacePhoto(ctx, f, src); err != nil {
				failed = append(failed, err)
				continue
			}
		}
		ph := f.Photo()
		ph.Pos = fs.Pos
		ph.Scale = fs.Scale
		ph.Rotation = fs.Rotation
	}
	if len(failed) > 0 {
		return errors.Wrap(errors.ErrCodeImageLoad, failed[0], "%d of %d photos could not be restored", len(failed), len(p.Frames))
	}
	return nil
}

// Load reads a project file. Relative photo paths are resolved against the
// file's directory when the project is applied.
func Load(path string) (*Project, error) {
	var p Project
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "project %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse project %s", path)
	}
	if p.Version > Version {
		return nil, errors.New(errors.ErrCodeInvalidInput, "project %s has version %d, newer than supported %d", path, p.Version, Version)
	}
	if _, err := p.Descriptor(); err != nil {
		return nil, fmt.Errorf("project %s: %w", path, err)
	}
	if _, err := p.AspectRatio(); err != nil {
		return nil, fmt.Errorf("project %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}
	p.dir = filepath.Dir(abs)
	return &p, nil
}

// Save writes the project as TOML, creating parent directories.
func (p *Project) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	p.Updated = time.Now().UTC().Truncate(time.Second)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create project file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return nil
}
