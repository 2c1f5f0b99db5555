// Package geom provides the small amount of planar geometry shared by the
// layout engine, the scene model and the renderers.
//
// All coordinates are in canvas units (one unit is one output pixel) with
// the origin at the top-left corner and y growing downwards.
package geom

import "math"

// Point is a location or offset in canvas space.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Manhattan returns |X| + |Y|, the distance metric used for drag thresholds.
func (p Point) Manhattan() float64 { return math.Abs(p.X) + math.Abs(p.Y) }

// Rotate rotates p around the origin by deg degrees (clockwise on screen).
func (p Point) Rotate(deg float64) Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Rect is an axis-aligned rectangle. Left <= Right and Top <= Bottom.
type Rect struct {
	Left, Top     float64
	Right, Bottom float64
}

// XYWH builds a Rect from its top-left corner and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Center returns the geometric center.
func (r Rect) Center() Point { return Point{r.CenterX(), r.CenterY()} }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.Left, r.Top} }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{r.Left + d.X, r.Top + d.Y, r.Right + d.X, r.Bottom + d.Y}
}

// Local returns r moved so its top-left corner sits at the origin.
func (r Rect) Local() Rect { return XYWH(0, 0, r.Width(), r.Height()) }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{r.Left + d, r.Top + d, r.Right - d, r.Bottom - d}
}

// Contains reports whether p lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive, so adjacent cells of a
// tiling never both contain the same point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersect returns the overlap of r and s, or the zero Rect if they do not
// overlap.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, s.Left),
		Top:    math.Max(r.Top, s.Top),
		Right:  math.Min(r.Right, s.Right),
		Bottom: math.Min(r.Bottom, s.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Overlaps reports whether r and s share a region of positive area.
func (r Rect) Overlaps(s Rect) bool { return !r.Intersect(s).Empty() }

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, s.Left),
		Top:    math.Min(r.Top, s.Top),
		Right:  math.Max(r.Right, s.Right),
		Bottom: math.Max(r.Bottom, s.Bottom),
	}
}

// BoundsOf returns the axis-aligned bounding box of pts.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		r.Left = math.Min(r.Left, p.X)
		r.Top = math.Min(r.Top, p.Y)
		r.Right = math.Max(r.Right, p.X)
		r.Bottom = math.Max(r.Bottom, p.Y)
	}
	return r
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Right, r.Bottom},
		{r.Left, r.Bottom},
	}
}

// ApproxEqual reports whether a and b differ by less than eps.
func ApproxEqual(a, b, eps float64) bool { return math.Abs(a-b) < eps }
