package scene

import (
	"image"
	"image/color"

	"github.com/matzehuels/collage/pkg/geom"
)

// Surface is the painting backend a scene draws onto. Transforms compose
// like a matrix stack: each call applies in the current local space.
type Surface interface {
	Push()
	Pop()

	Translate(x, y float64)
	// Rotate rotates by degrees, clockwise on screen.
	Rotate(deg float64)
	Scale(s float64)

	// ClipRoundedRect intersects the clip region with r.
	ClipRoundedRect(r geom.Rect, radius float64)
	ResetClip()

	FillRect(r geom.Rect, c color.Color)
	StrokeRoundedRect(r geom.Rect, radius, width float64, c color.Color)
	// DrawImage draws img with its top-left corner at the local origin.
	DrawImage(img image.Image)
}

// Style carries the editor settings that affect painting.
type Style struct {
	// Radius is the frame corner radius; the white border is as wide as
	// the radius, so a zero radius draws square, borderless frames.
	Radius float64
	// Background fills the canvas behind the frames.
	Background color.Color
	// Border is the frame outline color.
	Border color.Color
	// Highlight is the outline color of the selected frame.
	Highlight color.Color

	selected bool
}

// Default colors.
var (
	FrameBackground = color.RGBA{232, 232, 232, 255}
	FrameBorder     = color.White
	SelectionColor  = color.RGBA{66, 133, 244, 255}
)

// DefaultStyle returns the startup style.
func DefaultStyle(radius float64) Style {
	return Style{
		Radius:     radius,
		Background: FrameBackground,
		Border:     FrameBorder,
		Highlight:  SelectionColor,
	}
}

// Drawable is a node that can paint itself.
type Drawable interface {
	Node
	Draw(s Surface, st Style)
}

var (
	_ Drawable = (*Frame)(nil)
	_ Drawable = (*Photo)(nil)
)

// Draw paints the frame and its photo in canvas space.
func (f *Frame) Draw(s Surface, st Style) {
	s.Push()
	defer s.Pop()

	pos := f.Pos()
	s.Translate(pos.X, pos.Y)
	local := f.Local()

	s.ClipRoundedRect(local, st.Radius)
	if f.photo != nil {
		f.photo.Draw(s, st)
	}
	s.ResetClip()

	if st.Radius > 0 && st.Border != nil {
		s.StrokeRoundedRect(local, st.Radius, st.Radius, st.Border)
	}
	if st.selected && st.Highlight != nil {
		s.StrokeRoundedRect(local.Inset(2), st.Radius, 3, st.Highlight)
	}
}

// Draw paints the background and every frame in insertion order.
func (sc *Scene) Draw(s Surface, st Style) {
	if st.Background != nil {
		s.FillRect(sc.Background(), st.Background)
	}
	for _, f := range sc.frames {
		fs := st
		fs.selected = f == sc.selected
		f.Draw(s, fs)
	}
}
