package editor

import (
	"math"

	"github.com/matzehuels/collage/pkg/geom"
	"github.com/matzehuels/collage/pkg/scene"
)

// State is the pointer interaction state of the controller.
type State int

const (
	// Idle waits for a press.
	Idle State = iota
	// DraggingMove pans the pressed photo inside its frame.
	DraggingMove
	// SwapArmed has recorded a secondary-button press; the drag has not yet
	// travelled far enough to start a swap.
	SwapArmed
	// DraggingSwap carries a swap payload until release.
	DraggingSwap
)

var stateNames = [...]string{"idle", "dragging-move", "swap-armed", "dragging-swap"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether every key in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// Controller turns pointer, wheel and key input into photo transform
// changes. It holds no reference to the scene: callers resolve hit tests
// and hand in the affected frame or photo.
type Controller struct {
	cfg *Config

	state  State
	frame  *scene.Frame
	anchor geom.Point
	last   geom.Point
}

// NewController returns an idle controller reading steps and thresholds
// from cfg. Later changes to cfg take effect immediately.
func NewController(cfg *Config) *Controller {
	return &Controller{cfg: cfg}
}

// State returns the current interaction state.
func (c *Controller) State() State { return c.state }

// Frame returns the frame the current interaction started on, or nil.
func (c *Controller) Frame() *scene.Frame { return c.frame }

// Press starts an interaction on f at canvas point p. Presses outside a
// frame, or while another interaction is in progress, are ignored.
func (c *Controller) Press(f *scene.Frame, p geom.Point, b Button) {
	if c.state != Idle || f == nil || f.Photo() == nil {
		return
	}
	c.frame = f
	c.anchor = p
	c.last = p
	switch b {
	case ButtonPrimary:
		c.state = DraggingMove
	case ButtonSecondary:
		c.state = SwapArmed
	}
}

// Move follows the pointer to canvas point p. While moving, the photo is
// translated by the pointer delta. While armed, crossing the drag-start
// distance begins a swap drag and returns its payload (ok is true exactly
// once per drag).
func (c *Controller) Move(p geom.Point) (payload scene.SwapPayload, ok bool) {
	switch c.state {
	case DraggingMove:
		if ph := c.frame.Photo(); ph != nil {
			ph.Pos = ph.Pos.Add(p.Sub(c.last))
		}
		c.last = p
	case SwapArmed:
		if p.Sub(c.anchor).Manhattan() < c.cfg.DragStartDistance {
			return scene.SwapPayload{}, false
		}
		c.state = DraggingSwap
		return scene.SwapPayload{Pos: c.anchor}, true
	}
	return scene.SwapPayload{}, false
}

// Release ends the interaction. If a swap drag was in progress its payload
// is returned for delivery to the drop target.
func (c *Controller) Release() (payload scene.SwapPayload, ok bool) {
	if c.state == DraggingSwap {
		payload, ok = scene.SwapPayload{Pos: c.anchor}, true
	}
	c.Cancel()
	return payload, ok
}

// Cancel returns to Idle without side effects.
func (c *Controller) Cancel() {
	c.state = Idle
	c.frame = nil
}

// Wheel applies one wheel tick to p. delta > 0 zooms in (and rotates
// clockwise), delta < 0 zooms out. Modifiers pick what changes: none for
// scale, Shift for rotation, Shift+Ctrl for both. It reports whether p
// changed.
func (c *Controller) Wheel(p *scene.Photo, delta int, mods Modifiers) bool {
	if p == nil || delta == 0 {
		return false
	}
	scale, rot := c.stepScale(p.Scale, delta > 0), p.Rotation
	if delta > 0 {
		rot += c.cfg.RotationStep
	} else {
		rot -= c.cfg.RotationStep
	}

	switch mods &^ ModAlt {
	case 0:
		p.Scale = scale
	case ModShift:
		p.Rotation = rot
	case ModShift | ModCtrl:
		p.Scale = scale
		p.Rotation = rot
	default:
		return false
	}
	return true
}

// stepScale returns the scale after one wheel tick. Zooming in adds
// ScaleStep (FineScaleStep while below 2*ScaleStep) up to MaxZoom. Zooming
// out subtracts ScaleStep while scale >= 2*ScaleStep, then FineScaleStep
// while scale >= 2*FineScaleStep, so the result never drops below
// FineScaleStep. A scale already below that bound (a fit of a very large
// photo) is not pushed up by zooming out.
func (c *Controller) stepScale(scale float64, in bool) float64 {
	step, fine, maxZoom := c.cfg.ScaleStep, c.cfg.FineScaleStep, c.cfg.MaxZoom
	next := scale
	if in {
		if scale < maxZoom {
			if round2(scale) < round2(2*step) {
				next += fine
			} else {
				next += step
			}
		}
		return math.Min(next, math.Max(scale, maxZoom))
	}
	if scale >= 2*step {
		next -= step
	} else if scale >= 2*fine {
		next -= fine
	}
	return math.Max(next, math.Min(scale, c.cfg.MinScale()))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Key handles a transform key on f: "/" resets the photo, "f" resets and
// fits with [scene.FitFill], "F" (or "f" with Shift) with [scene.FitBoth].
// It reports whether the key was consumed.
func (c *Controller) Key(f *scene.Frame, key string, mods Modifiers) bool {
	if f == nil || f.Photo() == nil {
		return false
	}
	switch {
	case key == "/":
		f.ResetPhoto()
	case key == "F" || (key == "f" && mods.Has(ModShift)):
		f.ResetPhoto()
		f.Fit(scene.FitBoth)
	case key == "f":
		f.ResetPhoto()
		f.Fit(scene.FitFill)
	default:
		return false
	}
	return true
}
