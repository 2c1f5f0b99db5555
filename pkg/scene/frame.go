package scene

import (
	"github.com/google/uuid"

	"github.com/matzehuels/collage/pkg/geom"
)

// FitPolicy selects how [Frame.Fit] shrinks a photo.
type FitPolicy int

const (
	// FitFill covers the whole frame, letting the other axis overflow.
	FitFill FitPolicy = iota
	// FitBoth keeps both dimensions inside the frame.
	FitBoth
)

// String returns "fill" or "both".
func (p FitPolicy) String() string {
	if p == FitBoth {
		return "both"
	}
	return "fill"
}

// Node is anything placed on the canvas.
type Node interface {
	// Bounds returns the node's extent in canvas coordinates.
	Bounds() geom.Rect
}

// Frame is a fixed slot of the collage. It clips and positions exactly one
// [Photo]; a frame without a photo only exists halfway through a swap.
type Frame struct {
	ID     uuid.UUID
	Index  int
	Rect   geom.Rect
	Policy FitPolicy

	photo *Photo
}

// NewFrame returns an empty frame covering rect (canvas coordinates).
func NewFrame(index int, rect geom.Rect) *Frame {
	return &Frame{ID: uuid.New(), Index: index, Rect: rect, Policy: FitFill}
}

// Bounds implements Node.
func (f *Frame) Bounds() geom.Rect { return f.Rect }

// Pos returns the frame's canvas offset.
func (f *Frame) Pos() geom.Point { return f.Rect.Min() }

// Local returns the frame rectangle with its origin at (0,0).
func (f *Frame) Local() geom.Rect { return f.Rect.Local() }

// Photo returns the owned photo.
func (f *Frame) Photo() *Photo { return f.photo }

// Contains reports whether canvas point p falls inside the frame.
func (f *Frame) Contains(p geom.Point) bool { return f.Rect.Contains(p) }

// SetPhoto makes f the owner of p. With reset, the photo is re-centered
// and fitted using the frame's policy; without, its transform is kept as is
// (it moves with the frame, relative to the frame's corner).
func (f *Frame) SetPhoto(p *Photo, reset bool) {
	f.photo = p
	if p == nil {
		return
	}
	p.frame = f
	if reset {
		f.ResetPhoto()
		f.Fit(f.Policy)
	}
}

// ResetPhoto centers the photo in the frame and clears scale and rotation.
func (f *Frame) ResetPhoto() {
	p := f.photo
	if p == nil {
		return
	}
	pw, ph := float64(p.Width), float64(p.Height)
	p.Pos = geom.Pt(f.Rect.Width()/2-pw/2, f.Rect.Height()/2-ph/2)
	p.Origin = geom.Pt(pw/2, ph/2)
	p.Scale = 1
	p.Rotation = 0
}

// Fit shrinks the photo so it fills the frame (FitFill) or fits inside it
// (FitBoth). A photo smaller than the frame is never enlarged and the
// result depends only on the pixmap and frame sizes, so Fit is idempotent.
func (f *Frame) Fit(policy FitPolicy) {
	p := f.photo
	if p == nil || p.Width == 0 || p.Height == 0 {
		return
	}
	if s, ok := FitScale(float64(p.Width), float64(p.Height), f.Rect.Width(), f.Rect.Height(), policy); ok {
		p.Scale = s
	}
}

// FitScale computes the scale a photo of pw×ph needs to fit a fw×fh frame
// under policy. ok is false when no rescaling is needed.
func FitScale(pw, ph, fw, fh float64, policy FitPolicy) (scale float64, ok bool) {
	var wr, hr float64
	if pw > fw {
		wr = pw / fw
	}
	if ph > fh {
		hr = ph / fh
	}

	switch policy {
	case FitBoth:
		if wr > 1 && wr > hr {
			return fw / pw, true
		}
		if hr > 1 {
			return fh / ph, true
		}
	default:
		if wr > 1 && hr > 1 {
			if wr < hr {
				return fw / pw, true
			}
			return fh / ph, true
		}
	}
	return 0, false
}
