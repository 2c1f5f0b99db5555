package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/internal/server"
	"github.com/matzehuels/collage/pkg/cache"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/source"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr       string
	layout     string
	aspect     string
	radius     float64
	background string
	noCache    bool
}

// serveCommand creates the serve command, an HTTP preview of the collage.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:       "127.0.0.1:8080",
		layout:     pipeline.DefaultLayout,
		aspect:     pipeline.DefaultAspect,
		radius:     pipeline.DefaultRadius,
		background: pipeline.DefaultBackground,
	}

	cmd := &cobra.Command{
		Use:   "serve [images...]",
		Short: "Serve collage renders and layout previews over HTTP",
		Long: `Serve collage renders and layout previews over HTTP.

  /collage.png  /collage.jpg  /collage.gif   the collage
  /thumb.jpg                                 a JPEG thumbnail (?size=)
  /layouts                                   layout presets as JSON
  /layouts/<descriptor>                      cells as JSON (?format=dot|svg|png|wireframe)

The collage routes take layout, aspect, radius, background and scale query
parameters that override the flags below. Renders are cached, so reloading
an unchanged collage is cheap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", opts.layout, "default layout descriptor or preset name")
	cmd.Flags().StringVarP(&opts.aspect, "aspect", "a", opts.aspect, "default aspect ratio")
	cmd.Flags().Float64Var(&opts.radius, "radius", opts.radius, "default frame corner radius")
	cmd.Flags().StringVar(&opts.background, "background", opts.background, "default canvas color")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, args []string, opts serveOpts) error {
	spec := opts.layout
	if d := findPreset(spec); d != "" {
		spec = d
	}
	radius := opts.radius
	base := pipeline.Options{
		Layout:     spec,
		Aspect:     opts.aspect,
		Sources:    args,
		Radius:     &radius,
		Background: opts.background,
	}
	check := base
	if err := check.ValidateAndSetDefaults(); err != nil {
		return err
	}

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "serve:"), source.FileLoader{}, c.Logger)
	defer runner.Close()

	srv := server.New(runner, base, c.Logger)
	printSuccess("Serving collage")
	printKeyValue("URL", "http://"+opts.addr+"/collage.png")
	printDetail("Press ctrl+c to stop")
	return srv.ListenAndServe(ctx, opts.addr)
}
