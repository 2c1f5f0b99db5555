package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectDimensions(t *testing.T) {
	tests := []struct {
		name          string
		rect          Rect
		width, height float64
		center        Point
	}{
		{"from origin", XYWH(0, 0, 100, 50), 100, 50, Pt(50, 25)},
		{"offset", XYWH(10, 20, 50, 50), 50, 50, Pt(35, 45)},
		{"zero", XYWH(50, 50, 0, 0), 0, 0, Pt(50, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, tt.rect.Width())
			assert.Equal(t, tt.height, tt.rect.Height())
			assert.Equal(t, tt.center, tt.rect.Center())
			assert.Equal(t, tt.width*tt.height, tt.rect.Area())
		})
	}
}

func TestRectContains(t *testing.T) {
	r := XYWH(0, 0, 10, 10)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Pt(5, 5), true},
		{"top-left corner", Pt(0, 0), true},
		{"right edge", Pt(10, 5), false},
		{"bottom edge", Pt(5, 10), false},
		{"outside", Pt(-1, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := XYWH(0, 0, 10, 10)

	assert.True(t, a.Overlaps(XYWH(5, 5, 10, 10)))
	assert.False(t, a.Overlaps(XYWH(10, 0, 10, 10)), "adjacent rectangles share an edge only")
	assert.False(t, a.Overlaps(XYWH(20, 20, 1, 1)))
	assert.Equal(t, XYWH(5, 5, 5, 5), a.Intersect(XYWH(5, 5, 10, 10)))
}

func TestRectUnion(t *testing.T) {
	u := XYWH(0, 0, 10, 10).Union(XYWH(20, 5, 10, 10))
	assert.Equal(t, Rect{Left: 0, Top: 0, Right: 30, Bottom: 15}, u)
	assert.Equal(t, XYWH(1, 1, 1, 1), Rect{}.Union(XYWH(1, 1, 1, 1)))
}

func TestRectTranslateAndInset(t *testing.T) {
	r := XYWH(0, 0, 10, 10).Translate(Pt(5, -5))
	assert.Equal(t, XYWH(5, -5, 10, 10), r)
	assert.Equal(t, XYWH(6, -4, 8, 8), r.Inset(1))
	assert.Equal(t, XYWH(0, 0, 10, 10), r.Local())
}

func TestPointRotate(t *testing.T) {
	p := Pt(1, 0).Rotate(90)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 1, p.Y, 1e-9)

	q := Pt(3, 4).Rotate(360)
	assert.InDelta(t, 3, q.X, 1e-9)
	assert.InDelta(t, 4, q.Y, 1e-9)
}

func TestPointManhattan(t *testing.T) {
	assert.Equal(t, 7.0, Pt(3, -4).Manhattan())
	assert.Equal(t, Pt(2, 2), Pt(5, 6).Sub(Pt(3, 4)))
	assert.Equal(t, Pt(8, 10), Pt(5, 6).Add(Pt(3, 4)))
}

func TestBoundsOf(t *testing.T) {
	r := BoundsOf(Pt(1, 5), Pt(-2, 3), Pt(4, -1))
	assert.Equal(t, Rect{Left: -2, Top: -1, Right: 4, Bottom: 5}, r)
	assert.Equal(t, Rect{}, BoundsOf())
}
