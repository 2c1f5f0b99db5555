package source

import (
	"image"
	"sync"

	"github.com/fogleman/gg"
)

// PlaceholderPath is the sentinel source used when no photos were supplied.
const PlaceholderPath = "builtin:placeholder"

// PlaceholderSize is the edge length of the placeholder image in pixels.
const PlaceholderSize = 128

var (
	placeholder     image.Image
	placeholderOnce sync.Once
)

// Placeholder returns a neutral "no photo" icon: a grey tile with a sun and
// two mountains. The image is drawn once and shared.
func Placeholder() image.Image {
	placeholderOnce.Do(func() {
		placeholder = drawPlaceholder(PlaceholderSize)
	})
	return placeholder
}

func drawPlaceholder(size int) image.Image {
	s := float64(size)
	dc := gg.NewContext(size, size)

	dc.SetRGB255(200, 200, 200)
	dc.Clear()

	dc.SetRGB255(150, 150, 150)
	dc.DrawCircle(s*0.7, s*0.3, s*0.1)
	dc.Fill()

	dc.MoveTo(s*0.1, s*0.85)
	dc.LineTo(s*0.4, s*0.4)
	dc.LineTo(s*0.7, s*0.85)
	dc.ClosePath()
	dc.Fill()

	dc.SetRGB255(170, 170, 170)
	dc.MoveTo(s*0.45, s*0.85)
	dc.LineTo(s*0.65, s*0.55)
	dc.LineTo(s*0.9, s*0.85)
	dc.ClosePath()
	dc.Fill()

	return dc.Image()
}
