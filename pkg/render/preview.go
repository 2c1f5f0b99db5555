package render

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/collage/pkg/fonts"
	"github.com/matzehuels/collage/pkg/layout"
)

var (
	wireBackground = color.White
	wireCell       = color.RGBA{232, 232, 232, 255}
	wireStroke     = color.RGBA{90, 90, 90, 255}
	wireText       = color.RGBA{40, 40, 40, 255}
)

// Wireframe draws numbered cell outlines for a computed layout, labelled
// with the base name of each cell's source. It is used to preview a
// layout without loading any image.
func Wireframe(w, h int, cells []layout.Cell) (image.Image, error) {
	return Paint(w, h, wireBackground, func(s *Surface) error {
		dc := s.Context()
		size := max(10, float64(min(w, h))/40)
		face, err := fonts.Face(size)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)

		for _, c := range cells {
			r := c.Rect.Inset(2)
			s.FillRect(r, wireCell)
			s.StrokeRoundedRect(r, 0, 1, wireStroke)

			dc.SetColor(wireText)
			cx, cy := r.CenterX(), r.CenterY()
			dc.DrawStringAnchored(fmt.Sprintf("#%d", c.Index+1), cx, cy-size*0.6, 0.5, 0.5)
			if c.Source != "" {
				dc.DrawStringAnchored(filepath.Base(c.Source), cx, cy+size*0.6, 0.5, 0.5)
			}
		}
		return nil
	})
}

// Terminal renders img as rows of half-block characters, two pixel rows
// per line, fitting it into cols×rows terminal cells.
func Terminal(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	w, h := TerminalSize(b.Dx(), b.Dy(), cols, rows)
	small := transform.Resize(img, w, h, transform.Linear)

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			st := lipgloss.NewStyle().Foreground(hexColor(small.At(x, y)))
			if y+1 < h {
				st = st.Background(hexColor(small.At(x, y+1)))
			}
			sb.WriteString(st.Render("▀"))
		}
		if y+2 < h {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// TerminalSize returns the pixel grid [Terminal] uses for a w×h image in
// cols×rows cells. Each cell holds one pixel column and two pixel rows.
func TerminalSize(w, h, cols, rows int) (int, int) {
	pixelRows := rows * 2
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	f := min(float64(cols)/float64(w), float64(pixelRows)/float64(h))
	return max(1, int(float64(w)*f)), max(1, int(float64(h)*f))
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
