package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/scene"
)

// Surface is a raster [scene.Surface] backed by a gg drawing context.
// Paths are anti-aliased and images are resampled bilinearly.
type Surface struct {
	dc    *gg.Context
	depth int
}

var _ scene.Surface = (*Surface)(nil)

// NewSurface allocates a w×h surface filled with fill.
func NewSurface(w, h int, fill color.Color) *Surface {
	dc := gg.NewContext(w, h)
	dc.SetColor(fill)
	dc.Clear()
	return &Surface{dc: dc}
}

// Image returns the pixels drawn so far.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// Context exposes the gg context for drawing that has no Surface method,
// such as text.
func (s *Surface) Context() *gg.Context { return s.dc }

func (s *Surface) Push() {
	s.dc.Push()
	s.depth++
}

func (s *Surface) Pop() {
	if s.depth == 0 {
		return
	}
	s.dc.Pop()
	s.depth--
}

// unwind pops every unbalanced Push and drops the clip, leaving the
// surface in its initial state.
func (s *Surface) unwind() {
	for s.depth > 0 {
		s.Pop()
	}
	s.dc.ResetClip()
	s.dc.Identity()
}

func (s *Surface) Translate(x, y float64) { s.dc.Translate(x, y) }
func (s *Surface) Rotate(deg float64)     { s.dc.Rotate(gg.Radians(deg)) }
func (s *Surface) Scale(f float64)        { s.dc.Scale(f, f) }

func (s *Surface) path(r geom.Rect, radius float64) {
	if radius > 0 {
		s.dc.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), radius)
	} else {
		s.dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	}
}

func (s *Surface) ClipRoundedRect(r geom.Rect, radius float64) {
	s.path(r, radius)
	s.dc.Clip()
}

func (s *Surface) ResetClip() { s.dc.ResetClip() }

func (s *Surface) FillRect(r geom.Rect, c color.Color) {
	s.dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *Surface) StrokeRoundedRect(r geom.Rect, radius, width float64, c color.Color) {
	s.path(r, radius)
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.Stroke()
}

func (s *Surface) DrawImage(img image.Image) { s.dc.DrawImage(img, 0, 0) }
