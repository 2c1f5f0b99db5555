package layout

import (
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/geom"
)

// Sources hands out photo sources, one per cell. [source.Cycle] implements it.
type Sources interface {
	Next() string
}

// Cell is one frame slot produced by a layout.
type Cell struct {
	// Index is the emission order, starting at 0.
	Index int
	// Rect is the cell in canvas coordinates.
	Rect geom.Rect
	// Source is the photo assigned to the cell.
	Source string
}

// Compute lays out d on a width×height canvas, drawing one source per cell.
func Compute(d Descriptor, width, height float64, src Sources) ([]Cell, error) {
	switch d.Kind {
	case Grid:
		return LayoutGrid(width, height, d.Cols, d.Rows, src)
	case Columns:
		return LayoutColumns(width, height, d.Tokens, src)
	case Rows:
		return LayoutRows(width, height, d.Tokens, src)
	default:
		return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown layout kind %d", int(d.Kind))
	}
}

// LayoutGrid partitions the canvas into cols×rows equal cells. Cells are
// emitted column-major: every row of the first column, then the second
// column, and so on.
func LayoutGrid(width, height float64, cols, rows int, src Sources) ([]Cell, error) {
	if err := checkCanvas(width, height); err != nil {
		return nil, err
	}
	if err := GridOf(cols, rows).Validate(); err != nil {
		return nil, err
	}

	w := width / float64(cols)
	h := height / float64(rows)
	cells := make([]Cell, 0, cols*rows)
	for x := range cols {
		for y := range rows {
			cells = append(cells, Cell{
				Index:  len(cells),
				Rect:   geom.XYWH(float64(x)*w, float64(y)*h, w, h),
				Source: src.Next(),
			})
		}
	}
	return cells, nil
}

// LayoutColumns splits the canvas into columns left to right. Each column is
// one base unit wide (two for big tokens) and holds token.Count cells of
// equal height stacked top to bottom.
func LayoutColumns(width, height float64, tokens []Token, src Sources) ([]Cell, error) {
	return layoutStrips(width, height, tokens, src, false)
}

// LayoutRows is the transpose of [LayoutColumns]: rows run top to bottom and
// each row holds token.Count cells of equal width left to right.
func LayoutRows(width, height float64, tokens []Token, src Sources) ([]Cell, error) {
	return layoutStrips(width, height, tokens, src, true)
}

// layoutStrips implements columns directly and rows by swapping axes on the
// way in and out.
func layoutStrips(width, height float64, tokens []Token, src Sources, transpose bool) ([]Cell, error) {
	if err := checkCanvas(width, height); err != nil {
		return nil, err
	}
	kind := Columns
	if transpose {
		kind = Rows
		width, height = height, width
	}
	if err := (Descriptor{Kind: kind, Tokens: tokens}).Validate(); err != nil {
		return nil, err
	}

	units := len(tokens)
	for _, t := range tokens {
		if t.Big {
			units++
		}
	}
	base := width / float64(units)

	var cells []Cell
	pos := 0.0
	for _, t := range tokens {
		span := base
		if t.Big {
			span = 2 * base
		}
		cell := height / float64(t.Count)
		for i := range t.Count {
			r := geom.XYWH(pos, float64(i)*cell, span, cell)
			if transpose {
				r = geom.XYWH(r.Top, r.Left, r.Height(), r.Width())
			}
			cells = append(cells, Cell{Index: len(cells), Rect: r, Source: src.Next()})
		}
		pos += span
	}
	return cells, nil
}

func checkCanvas(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return errors.New(errors.ErrCodeInvalidLayout, "canvas must have positive size, got %gx%g", width, height)
	}
	return nil
}
