package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/scene"
)

// Option configures export rendering.
type Option func(*exporter)

type exporter struct {
	style scene.Style
	scale float64
}

// WithStyle sets the frame radius and colors (default: radius 15).
func WithStyle(st scene.Style) Option {
	return func(e *exporter) { e.style = st }
}

// WithScale renders at a multiple of the canvas resolution (default 1).
func WithScale(s float64) Option {
	return func(e *exporter) {
		if s > 0 {
			e.scale = s
		}
	}
}

// Export flattens the scene into an opaque image of exactly the canvas size
// (times the scale option). The selection highlight is cleared first and
// the buffer starts out black.
//
// The drawing surface is released on every path: a panic while painting is
// recovered and returned as an INTERNAL_ERROR.
func Export(ctx context.Context, sc *scene.Scene, opts ...Option) (image.Image, error) {
	e := exporter{style: scene.DefaultStyle(15), scale: 1}
	for _, opt := range opts {
		opt(&e)
	}

	sc.ClearSelection()
	w, h := sc.Canvas().PixelSize()
	w = int(math.Round(float64(w) * e.scale))
	h = int(math.Round(float64(h) * e.scale))
	observability.Export().OnExportStart(ctx, w, h)

	return Paint(w, h, color.Black, func(s *Surface) error {
		if e.scale != 1 {
			s.Scale(e.scale)
		}
		sc.Draw(s, e.style)
		return nil
	})
}

// Paint allocates a surface, runs draw on it and returns the result. The
// surface's transform stack is unwound and its clip dropped afterwards,
// also when draw fails or panics.
func Paint(w, h int, fill color.Color, draw func(*Surface) error) (img image.Image, err error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInternal, "cannot paint a %dx%d surface", w, h)
	}
	s := NewSurface(w, h, fill)
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, errors.New(errors.ErrCodeInternal, "paint: %v", r)
		}
		s.unwind()
	}()

	if err := draw(s); err != nil {
		return nil, err
	}
	return s.Image(), nil
}

// FormatFor returns the imaging format for path's extension.
func FormatFor(path string) (imaging.Format, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return 0, err
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "output format for %s", path)
	}
	return f, nil
}

// Save writes img to path, choosing PNG, JPEG or GIF from the extension.
// Failures are EXPORT_WRITE (or INVALID_PATH/INVALID_FORMAT for bad names).
func Save(ctx context.Context, img image.Image, path string) error {
	start := time.Now()
	if _, err := FormatFor(path); err != nil {
		observability.Export().OnExportComplete(ctx, path, 0, time.Since(start), err)
		return err
	}
	err := imaging.Save(img, path, imaging.JPEGQuality(95))
	if err != nil {
		err = errors.Wrap(errors.ErrCodeExportWrite, err, "write %s", path)
	}
	b := img.Bounds()
	observability.Export().OnExportComplete(ctx, path, b.Dx()*b.Dy(), time.Since(start), err)
	return err
}

// Encode writes img to w in the named format ("png", "jpg", "jpeg", "gif").
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := imaging.FormatFromExtension(strings.TrimPrefix(strings.ToLower(format), "."))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "format %q", format)
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(95)); err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "encode %s", format)
	}
	return nil
}

// ExtFormat returns the lowercase extension of path without the dot.
func ExtFormat(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// ExportFile renders sc and saves it to path.
func ExportFile(ctx context.Context, sc *scene.Scene, path string, opts ...Option) error {
	if _, err := FormatFor(path); err != nil {
		return err
	}
	img, err := Export(ctx, sc, opts...)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return Save(ctx, img, path)
}
