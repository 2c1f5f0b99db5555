package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/scene"
)

func testController() (*Controller, *Config) {
	cfg := DefaultConfig()
	return NewController(&cfg), &cfg
}

func framedPhoto(w, h int) *scene.Frame {
	f := scene.NewFrame(0, geom.XYWH(0, 0, 400, 300))
	f.SetPhoto(scene.NewPhoto("p", image.NewRGBA(image.Rect(0, 0, w, h))), true)
	return f
}

func TestControllerMoveDrag(t *testing.T) {
	c, _ := testController()
	f := framedPhoto(200, 100)
	start := f.Photo().Pos

	c.Press(f, geom.Pt(10, 10), ButtonPrimary)
	require.Equal(t, DraggingMove, c.State())

	_, ok := c.Move(geom.Pt(15, 30))
	assert.False(t, ok)
	c.Move(geom.Pt(20, 20))
	assert.Equal(t, start.Add(geom.Pt(10, 10)), f.Photo().Pos)

	_, ok = c.Release()
	assert.False(t, ok)
	assert.Equal(t, Idle, c.State())
	assert.Nil(t, c.Frame())
}

func TestControllerSwapDrag(t *testing.T) {
	c, cfg := testController()
	f := framedPhoto(200, 100)
	start := f.Photo().Pos
	anchor := geom.Pt(50, 50)

	c.Press(f, anchor, ButtonSecondary)
	require.Equal(t, SwapArmed, c.State())

	// Below the drag-start distance nothing happens.
	_, ok := c.Move(geom.Pt(53, 55))
	assert.False(t, ok)
	assert.Equal(t, SwapArmed, c.State())

	payload, ok := c.Move(geom.Pt(50+cfg.DragStartDistance, 50))
	require.True(t, ok)
	assert.Equal(t, anchor, payload.Pos)
	assert.Equal(t, DraggingSwap, c.State())

	// The payload is emitted once per drag.
	_, ok = c.Move(geom.Pt(200, 200))
	assert.False(t, ok)
	assert.Equal(t, start, f.Photo().Pos, "swap drag must not move the photo")

	payload, ok = c.Release()
	require.True(t, ok)
	assert.Equal(t, anchor, payload.Pos)
	assert.Equal(t, Idle, c.State())
}

func TestControllerPressIgnored(t *testing.T) {
	c, _ := testController()

	c.Press(nil, geom.Pt(0, 0), ButtonPrimary)
	assert.Equal(t, Idle, c.State())

	empty := scene.NewFrame(0, geom.XYWH(0, 0, 10, 10))
	c.Press(empty, geom.Pt(1, 1), ButtonPrimary)
	assert.Equal(t, Idle, c.State())

	f := framedPhoto(10, 10)
	c.Press(f, geom.Pt(1, 1), ButtonSecondary)
	c.Press(f, geom.Pt(1, 1), ButtonPrimary)
	assert.Equal(t, SwapArmed, c.State(), "second press must not restart the interaction")
}

func TestControllerWheelModifiers(t *testing.T) {
	tests := []struct {
		name      string
		delta     int
		mods      Modifiers
		wantScale float64
		wantRot   float64
		wantOK    bool
	}{
		{"none zooms in", 1, 0, 1.05, 0, true},
		{"none zooms out", -1, 0, 0.95, 0, true},
		{"shift rotates", 1, ModShift, 1, 5, true},
		{"shift rotates back", -1, ModShift, 1, -5, true},
		{"shift ctrl both", 1, ModShift | ModCtrl, 1.05, 5, true},
		{"alt ignored", 1, ModAlt, 1.05, 0, true},
		{"ctrl alone", 1, ModCtrl, 1, 0, false},
		{"no delta", 0, 0, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testController()
			p := scene.NewPhoto("p", image.NewRGBA(image.Rect(0, 0, 10, 10)))

			ok := c.Wheel(p, tt.delta, tt.mods)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantScale, p.Scale, 1e-9)
			assert.InDelta(t, tt.wantRot, p.Rotation, 1e-9)
		})
	}
}

func TestControllerWheelSteps(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		delta int
		want  float64
	}{
		{"coarse in", 0.5, 1, 0.55},
		{"fine in near bottom", 0.05, 1, 0.06},
		{"coarse in at threshold", 0.1, 1, 0.15},
		{"coarse out", 0.5, -1, 0.45},
		{"fine out", 0.05, -1, 0.04},
		{"floor", 0.01, -1, 0.01},
		{"below floor kept", 0.005, -1, 0.005},
		{"cap", 1.98, 1, 2},
		{"above cap kept", 3, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testController()
			p := scene.NewPhoto("p", image.NewRGBA(image.Rect(0, 0, 10, 10)))
			p.Scale = tt.scale
			c.Wheel(p, tt.delta, 0)
			assert.InDelta(t, tt.want, p.Scale, 1e-9)
		})
	}
}

func TestControllerWheelBounded(t *testing.T) {
	c, cfg := testController()
	p := scene.NewPhoto("p", image.NewRGBA(image.Rect(0, 0, 10, 10)))

	prev := p.Scale
	for range 200 {
		c.Wheel(p, 1, 0)
		require.GreaterOrEqual(t, p.Scale, prev, "zoom in must not shrink")
		prev = p.Scale
	}
	assert.Equal(t, cfg.MaxZoom, p.Scale)

	for range 500 {
		c.Wheel(p, -1, 0)
		require.LessOrEqual(t, p.Scale, prev, "zoom out must not grow")
		require.Greater(t, p.Scale, cfg.MinScale()-1e-9)
		prev = p.Scale
	}
	assert.Less(t, p.Scale, 2*cfg.FineScaleStep+1e-9)
}

func TestControllerKey(t *testing.T) {
	tests := []struct {
		key       string
		mods      Modifiers
		wantScale float64
		wantOK    bool
	}{
		// 800x200 in 400x300: fill is limited by neither axis, fit-both by width.
		{"/", 0, 1, true},
		{"f", 0, 1, true},
		{"F", 0, 0.5, true},
		{"f", ModShift, 0.5, true},
		{"x", 0, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, _ := testController()
			f := framedPhoto(800, 200)
			p := f.Photo()
			p.Scale, p.Rotation, p.Pos = 3, 40, geom.Pt(-7, 9)

			ok := c.Key(f, tt.key, tt.mods)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantScale, p.Scale, 1e-9)
			if ok {
				assert.Zero(t, p.Rotation)
				assert.Equal(t, geom.Pt(200-400, 150-100), p.Pos)
			}
		})
	}

	c, _ := testController()
	assert.False(t, c.Key(nil, "/", 0))
}
