package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/geom"
)

// DefaultCanvasWidth is the logical width of every collage in pixels.
const DefaultCanvasWidth = 1024.0

// AspectRatio is a "W:H" selector value. The canvas height is the width
// multiplied by W/H, so "2:3" yields a landscape 1024×683 collage.
type AspectRatio struct {
	W, H int
}

// AspectRatios lists the ratios offered by the editor, in selector order.
var AspectRatios = []AspectRatio{{1, 1}, {2, 3}, {3, 4}}

// DefaultAspectRatio is the ratio selected at startup (3:4).
var DefaultAspectRatio = AspectRatios[2]

// ParseAspectRatio parses "W:H" with positive integers.
func ParseAspectRatio(s string) (AspectRatio, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return AspectRatio{}, errors.New(errors.ErrCodeInvalidAspect, "aspect ratio must be W:H, got %q", s)
	}
	wi, err1 := strconv.Atoi(strings.TrimSpace(w))
	hi, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil || wi < 1 || hi < 1 {
		return AspectRatio{}, errors.New(errors.ErrCodeInvalidAspect, "aspect ratio must be two positive integers, got %q", s)
	}
	return AspectRatio{W: wi, H: hi}, nil
}

// Ratio returns W/H.
func (a AspectRatio) Ratio() float64 { return float64(a.W) / float64(a.H) }

// String returns "W:H".
func (a AspectRatio) String() string { return fmt.Sprintf("%d:%d", a.W, a.H) }

// Next returns the ratio following a in [AspectRatios], wrapping around.
// Unknown ratios continue with the first entry.
func (a AspectRatio) Next() AspectRatio {
	for i, r := range AspectRatios {
		if r == a {
			return AspectRatios[(i+1)%len(AspectRatios)]
		}
	}
	return AspectRatios[0]
}

// Canvas is the logical drawing surface of a collage.
// Height always equals Width * AspectRatio.
type Canvas struct {
	Width       float64
	Height      float64
	AspectRatio float64
}

// NewCanvas returns a canvas of the given width and ratio.
func NewCanvas(width float64, a AspectRatio) Canvas {
	r := a.Ratio()
	return Canvas{Width: width, Height: width * r, AspectRatio: r}
}

// DefaultCanvas returns the startup canvas (1024 wide, 3:4).
func DefaultCanvas() Canvas { return NewCanvas(DefaultCanvasWidth, DefaultAspectRatio) }

// Rect returns the canvas bounds.
func (c Canvas) Rect() geom.Rect { return geom.XYWH(0, 0, c.Width, c.Height) }

// PixelSize returns the output raster size, rounding fractional heights.
func (c Canvas) PixelSize() (int, int) {
	return int(math.Round(c.Width)), int(math.Round(c.Height))
}
