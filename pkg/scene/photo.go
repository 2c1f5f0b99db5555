package scene

import (
	"image"

	"github.com/matzehuels/collage/pkg/geom"
)

// Transform is the user-adjustable geometry of a photo inside its frame.
type Transform struct {
	// Pos is the offset of the pixmap's top-left corner from the frame's
	// top-left corner, before scale and rotation.
	Pos geom.Point
	// Scale is the uniform zoom factor around Origin.
	Scale float64
	// Rotation is in degrees, clockwise on screen, around Origin.
	Rotation float64
}

// Photo is a displayed image with its own pan, zoom and rotation. It is
// owned by at most one [Frame] at a time.
type Photo struct {
	Path   string
	Image  image.Image
	Width  int
	Height int

	Transform

	// Origin is the pixmap center; scale and rotation pivot around it.
	Origin geom.Point

	frame *Frame
}

// NewPhoto wraps img, which was loaded from path.
func NewPhoto(path string, img image.Image) *Photo {
	p := &Photo{Transform: Transform{Scale: 1}}
	p.SetImage(path, img)
	return p
}

// SetImage replaces the pixmap and moves the origin to its center. Position,
// scale and rotation are left alone; callers re-center with [Frame.ResetPhoto].
func (p *Photo) SetImage(path string, img image.Image) {
	b := img.Bounds()
	p.Path = path
	p.Image = img
	p.Width = b.Dx()
	p.Height = b.Dy()
	p.Origin = geom.Pt(float64(p.Width)/2, float64(p.Height)/2)
}

// Frame returns the owning frame, or nil.
func (p *Photo) Frame() *Frame { return p.frame }

// ToFrame maps a pixmap coordinate to frame-local coordinates.
func (p *Photo) ToFrame(q geom.Point) geom.Point {
	d := q.Sub(p.Origin)
	d = geom.Pt(d.X*p.Scale, d.Y*p.Scale).Rotate(p.Rotation)
	return p.Pos.Add(p.Origin).Add(d)
}

// FromFrame maps a frame-local coordinate back to pixmap coordinates.
func (p *Photo) FromFrame(q geom.Point) geom.Point {
	d := q.Sub(p.Pos).Sub(p.Origin).Rotate(-p.Rotation)
	if p.Scale != 0 {
		d = geom.Pt(d.X/p.Scale, d.Y/p.Scale)
	}
	return p.Origin.Add(d)
}

// LocalBounds returns the frame-local bounding box of the transformed pixmap.
func (p *Photo) LocalBounds() geom.Rect {
	c := geom.XYWH(0, 0, float64(p.Width), float64(p.Height)).Corners()
	return geom.BoundsOf(p.ToFrame(c[0]), p.ToFrame(c[1]), p.ToFrame(c[2]), p.ToFrame(c[3]))
}

// Bounds implements Node. The box is unclipped: it may extend past the frame.
func (p *Photo) Bounds() geom.Rect {
	b := p.LocalBounds()
	if p.frame != nil {
		b = b.Translate(p.frame.Pos())
	}
	return b
}

// Draw paints the pixmap with its transform applied. The caller has already
// translated to the frame's corner and clipped to its shape.
func (p *Photo) Draw(s Surface, _ Style) {
	if p.Image == nil {
		return
	}
	s.Push()
	defer s.Pop()
	pivot := p.Pos.Add(p.Origin)
	s.Translate(pivot.X, pivot.Y)
	s.Rotate(p.Rotation)
	s.Scale(p.Scale)
	s.Translate(-p.Origin.X, -p.Origin.Y)
	s.DrawImage(p.Image)
}

// Covers reports whether the transformed pixmap is drawn at frame-local q.
func (p *Photo) Covers(q geom.Point) bool {
	return geom.XYWH(0, 0, float64(p.Width), float64(p.Height)).Contains(p.FromFrame(q))
}
