package layout

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-graphviz"
)

// ToDOT describes a computed layout as a Graphviz tree: the canvas at the
// root, one node per column (or row) and one leaf per cell. Grid layouts
// group cells by column.
//
// The result can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(d Descriptor, cells []Cell) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  canvas [label=%q, fillcolor=lightgrey];\n", d.String())

	for gi, group := range groups(d, cells) {
		gid := fmt.Sprintf("g%d", gi)
		fmt.Fprintf(&buf, "  %s [label=%q, style=\"rounded,filled,dashed\"];\n", gid, group.label)
		fmt.Fprintf(&buf, "  canvas -> %s;\n", gid)
		for _, c := range group.cells {
			label := fmt.Sprintf("#%d %.0fx%.0f @ %.0f,%.0f", c.Index+1, c.Rect.Width(), c.Rect.Height(), c.Rect.Left, c.Rect.Top)
			if c.Source != "" {
				label += "\n" + filepath.Base(c.Source)
			}
			fmt.Fprintf(&buf, "  c%d [label=%q];\n", c.Index, label)
			fmt.Fprintf(&buf, "  %s -> c%d;\n", gid, c.Index)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type cellGroup struct {
	label string
	cells []Cell
}

func groups(d Descriptor, cells []Cell) []cellGroup {
	var sizes []int
	name := "column"
	switch d.Kind {
	case Grid:
		for range d.Cols {
			sizes = append(sizes, d.Rows)
		}
	case Rows:
		name = "row"
		fallthrough
	default:
		for _, t := range d.Tokens {
			sizes = append(sizes, t.Count)
		}
	}

	var out []cellGroup
	i := 0
	for gi, n := range sizes {
		if i+n > len(cells) {
			break
		}
		label := fmt.Sprintf("%s %d", name, gi+1)
		if d.Kind != Grid && d.Tokens[gi].Big {
			label += " (big)"
		}
		out = append(out, cellGroup{label: label, cells: cells[i : i+n]})
		i += n
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
