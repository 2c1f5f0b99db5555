// Package fonts provides the font faces used for raster text.
//
// Go Regular is compiled into the binary (via golang.org/x/image/font/gofont),
// so previews and overlays render identically without system fonts.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Regular returns the parsed Go Regular font. The result is cached after
// first computation.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a Go Regular face of the given pixel size. Faces are cached
// per size and shared; they must not be closed.
func Face(size float64) (font.Face, error) {
	facesMu.Lock()
	defer facesMu.Unlock()

	if f, ok := faces[size]; ok {
		return f, nil
	}
	fnt, err := Regular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	faces[size] = f
	return f, nil
}
