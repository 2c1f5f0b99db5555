package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scene"
	"github.com/matzehuels/collage/pkg/source"
)

// =============================================================================
// Render Stage
// =============================================================================

// Render flattens sc once and encodes it in every requested format.
func Render(ctx context.Context, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	st, err := opts.Style()
	if err != nil {
		return nil, err
	}
	img, err := render.Export(ctx, sc, render.WithStyle(st), render.WithScale(opts.Scale))
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatThumb:
			data, err = render.ThumbnailJPEG(img, opts.ThumbSize)
		default:
			var buf bytes.Buffer
			err = render.Encode(&buf, img, format)
			data = buf.Bytes()
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// =============================================================================
// Layout Previews
// =============================================================================

// Layout preview formats.
const (
	LayoutFormatDOT = "dot"
	LayoutFormatSVG = "svg"
	LayoutFormatPNG = "png"
	// LayoutFormatWireframe is a numbered raster sketch of the cells.
	LayoutFormatWireframe = "wireframe"
)

// RenderLayout renders a layout descriptor without photos: as a Graphviz
// partition graph (dot, svg, png) or a wireframe PNG of w×h.
func RenderLayout(desc layout.Descriptor, w, h int, format string, sources []string) ([]byte, error) {
	if len(sources) == 0 {
		sources = []string{""}
	}
	cycle, err := source.NewCycle(sources)
	if err != nil {
		return nil, err
	}
	cells, err := layout.Compute(desc, float64(w), float64(h), cycle)
	if err != nil {
		return nil, err
	}

	switch format {
	case LayoutFormatDOT:
		return []byte(layout.ToDOT(desc, cells)), nil
	case LayoutFormatSVG:
		return layout.RenderSVG(layout.ToDOT(desc, cells))
	case LayoutFormatPNG:
		return layout.RenderPNG(layout.ToDOT(desc, cells))
	case LayoutFormatWireframe:
		img, err := render.Wireframe(w, h, cells)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := render.Encode(&buf, img, "png"); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported layout format: %s", format)
}
