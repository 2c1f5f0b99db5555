package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/scene"
)

// layoutOpts holds the flags of the layout command.
type layoutOpts struct {
	aspect    string
	width     int
	output    string
	dot       bool
	svg       bool
	png       bool
	wireframe bool
	noCache   bool
}

// format returns the preview format selected by the flags, or "" for the
// cell table.
func (o layoutOpts) format() (string, error) {
	var formats []string
	for _, f := range []struct {
		set    bool
		format string
	}{
		{o.dot, pipeline.LayoutFormatDOT},
		{o.svg, pipeline.LayoutFormatSVG},
		{o.png, pipeline.LayoutFormatPNG},
		{o.wireframe, pipeline.LayoutFormatWireframe},
	} {
		if f.set {
			formats = append(formats, f.format)
		}
	}
	switch len(formats) {
	case 0:
		return "", nil
	case 1:
		return formats[0], nil
	}
	return "", fmt.Errorf("choose one of --dot, --svg, --png, --wireframe")
}

// layoutCommand creates the layout command for previewing canvas partitions.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{
		aspect: pipeline.DefaultAspect,
		width:  scene.DefaultCanvasWidth,
	}

	cmd := &cobra.Command{
		Use:   "layout <descriptor>",
		Short: "Show how a layout partitions the canvas",
		Long: `Show how a layout partitions the canvas.

The descriptor is a grid ("grid:3x4"), a column list ("columns:3/2B/3") or a
row list ("rows:1B/2/3/2B"); preset names such as "Grid 3x3" work too. Each
number is the photo count of one strip and a trailing B doubles the strip.

By default the cell rectangles are printed as a table. --dot prints the
partition as a Graphviz graph, --svg and --png render it, and --wireframe
draws the numbered cells as a PNG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.aspect, "aspect", "a", opts.aspect, "aspect ratio: 1:1, 2:3 or 3:4")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "canvas width in pixels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the preview to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print the partition as Graphviz DOT")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render the partition graph as SVG")
	cmd.Flags().BoolVar(&opts.png, "png", false, "render the partition graph as PNG")
	cmd.Flags().BoolVar(&opts.wireframe, "wireframe", false, "draw the cells as a PNG wireframe")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout prints or writes one layout preview.
func (c *CLI) runLayout(ctx context.Context, spec string, opts layoutOpts) error {
	desc, err := parseLayout(spec)
	if err != nil {
		return err
	}
	aspect, err := scene.ParseAspectRatio(opts.aspect)
	if err != nil {
		return err
	}
	canvas := scene.NewCanvas(float64(opts.width), aspect)
	w, h := canvas.PixelSize()

	format, err := opts.format()
	if err != nil {
		return err
	}
	if format == "" {
		cells, err := layout.Compute(desc, canvas.Width, canvas.Height, emptySources{})
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, StyleTitle.Render(desc.String())+StyleDim.Render(fmt.Sprintf("  %d frames on %dx%d", len(cells), w, h)))
		fmt.Fprintln(stdout, renderTable([]string{"Frame", "X", "Y", "Width", "Height"}, cellRows(cells)))
		return nil
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, cacheHit, err := runner.RenderLayout(ctx, desc.String(), w, h, format)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Layout preview written")
	printFile(opts.output)
	printStats(desc.Count(), 0, cacheHit)
	return nil
}

// presetsCommand creates the presets command.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in layout presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, len(layout.Presets))
			for i, p := range layout.Presets {
				mark := ""
				if i == layout.DefaultPreset {
					mark = "default"
				}
				rows[i] = []string{p.Name, p.Descriptor.String(), fmt.Sprint(p.Descriptor.Count()), mark}
			}
			fmt.Fprintln(stdout, renderTable([]string{"Preset", "Descriptor", "Frames", ""}, rows))
			return nil
		},
	}
}

// parseLayout accepts a descriptor or a preset name.
func parseLayout(spec string) (layout.Descriptor, error) {
	if i := layout.FindPreset(spec); i >= 0 {
		return layout.Presets[i].Descriptor, nil
	}
	return layout.Parse(spec)
}

// emptySources hands out blank sources for photo-less layout previews.
type emptySources struct{}

func (emptySources) Next() string { return "" }
