package scene

import (
	"context"
	"image"
	"slices"
	"time"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/source"
)

// Scene is the whole collage: a background and one frame per layout cell.
//
// A Scene is single-threaded: callers serialize access, as an event loop
// naturally does.
type Scene struct {
	canvas  Canvas
	layout  layout.Descriptor
	sources []string

	loader   source.Loader
	frames   []*Frame
	selected *Frame
}

// New returns an empty scene on the default canvas. Photos are loaded with
// loader; a nil loader means [source.FileLoader].
func New(loader source.Loader) *Scene {
	if loader == nil {
		loader = source.FileLoader{}
	}
	return &Scene{
		canvas: DefaultCanvas(),
		layout: layout.Presets[layout.DefaultPreset].Descriptor,
		loader: loader,
	}
}

// Canvas returns the current canvas.
func (sc *Scene) Canvas() Canvas { return sc.canvas }

// Layout returns the current layout descriptor.
func (sc *Scene) Layout() layout.Descriptor { return sc.layout }

// Sources returns the photo sources the scene was built from.
func (sc *Scene) Sources() []string { return slices.Clone(sc.sources) }

// Loader returns the photo loader.
func (sc *Scene) Loader() source.Loader { return sc.loader }

// Frames returns the frames in layout order.
func (sc *Scene) Frames() []*Frame { return sc.frames }

// Background returns the background rectangle: the canvas inset by one unit.
func (sc *Scene) Background() geom.Rect { return sc.canvas.Rect().Inset(1) }

// Rebuild replaces every frame and photo with a fresh layout of sources on
// canvas. Photos are cycled through when there are more cells than sources.
//
// The new scene is assembled completely before the old one is dropped, so a
// failed rebuild (INVALID_LAYOUT, EMPTY_INPUT, cancellation) leaves the
// previous scene intact and callers never observe a half-built scene.
// Photos that fail to load are replaced by the placeholder and reported
// through the scene hooks.
func (sc *Scene) Rebuild(ctx context.Context, desc layout.Descriptor, canvas Canvas, sources []string) error {
	hooks := observability.Scene()
	start := time.Now()
	hooks.OnRebuildStart(ctx, desc.String(), desc.Count())

	frames, err := sc.build(ctx, desc, canvas, sources)
	hooks.OnRebuildComplete(ctx, desc.String(), len(frames), time.Since(start), err)
	if err != nil {
		return err
	}

	sc.canvas = canvas
	sc.layout = desc
	sc.sources = slices.Clone(sources)
	sc.frames = frames
	sc.selected = nil
	return nil
}

func (sc *Scene) build(ctx context.Context, desc layout.Descriptor, canvas Canvas, sources []string) ([]*Frame, error) {
	cycle, err := source.NewCycle(sources)
	if err != nil {
		return nil, err
	}
	cells, err := layout.Compute(desc, canvas.Width, canvas.Height, cycle)
	if err != nil {
		return nil, err
	}

	loaded := make(map[string]image.Image, cycle.Len())
	frames := make([]*Frame, 0, len(cells))
	for _, c := range cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, ok := loaded[c.Source]
		if !ok {
			img = sc.load(ctx, c.Source)
			loaded[c.Source] = img
		}
		f := NewFrame(c.Index, c.Rect)
		f.SetPhoto(NewPhoto(c.Source, img), true)
		frames = append(frames, f)
	}
	return frames, nil
}

func (sc *Scene) load(ctx context.Context, path string) image.Image {
	img, err := sc.loader.Load(path)
	if err != nil {
		observability.Scene().OnImageLoadFailed(ctx, path, err)
		return source.Placeholder()
	}
	return img
}

// SetLayout rebuilds with a new layout, keeping canvas and sources.
func (sc *Scene) SetLayout(ctx context.Context, desc layout.Descriptor) error {
	return sc.Rebuild(ctx, desc, sc.canvas, sc.sources)
}

// SetAspectRatio rebuilds on a canvas of the same width and a new ratio.
func (sc *Scene) SetAspectRatio(ctx context.Context, a AspectRatio) error {
	return sc.Rebuild(ctx, sc.layout, NewCanvas(sc.canvas.Width, a), sc.sources)
}

// Clear drops every frame. The canvas, layout and sources are kept so the
// scene can be rebuilt.
func (sc *Scene) Clear() {
	sc.frames = nil
	sc.selected = nil
}

// FramesAt returns every frame containing canvas point p, topmost first.
func (sc *Scene) FramesAt(p geom.Point) []*Frame {
	var out []*Frame
	for i := len(sc.frames) - 1; i >= 0; i-- {
		if sc.frames[i].Contains(p) {
			out = append(out, sc.frames[i])
		}
	}
	return out
}

// FrameAt returns the topmost frame at p, or nil.
func (sc *Scene) FrameAt(p geom.Point) *Frame {
	if fs := sc.FramesAt(p); len(fs) > 0 {
		return fs[0]
	}
	return nil
}

// PhotoAt returns the photo visibly drawn at canvas point p: the photo of
// the frame under p, provided its transformed pixmap reaches p.
func (sc *Scene) PhotoAt(p geom.Point) *Photo {
	f := sc.FrameAt(p)
	if f == nil || f.photo == nil {
		return nil
	}
	if !f.photo.Covers(p.Sub(f.Pos())) {
		return nil
	}
	return f.photo
}

// Select marks f as the active frame.
func (sc *Scene) Select(f *Frame) { sc.selected = f }

// Selected returns the active frame, or nil.
func (sc *Scene) Selected() *Frame { return sc.selected }

// ClearSelection removes the selection highlight.
func (sc *Scene) ClearSelection() { sc.selected = nil }

// ReplacePhoto loads path into f's photo, then re-centers and fits it.
// On IMAGE_LOAD the previous photo stays untouched.
func (sc *Scene) ReplacePhoto(ctx context.Context, f *Frame, path string) error {
	if f == nil || f.photo == nil {
		return errors.New(errors.ErrCodeSwapTargetNotFound, "no frame to load %s into", path)
	}
	img, err := sc.loader.Load(path)
	if err != nil {
		observability.Scene().OnImageLoadFailed(ctx, path, err)
		return err
	}
	f.photo.SetImage(path, img)
	f.ResetPhoto()
	f.Fit(f.Policy)
	return nil
}

// FrameIndex returns the position of f in layout order, or -1.
func (sc *Scene) FrameIndex(f *Frame) int { return slices.Index(sc.frames, f) }
