package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/project"
	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scene"
	"github.com/matzehuels/collage/pkg/source"
)

const (
	// defaultOutput is written when no --output is given.
	defaultOutput = "collage.png"

	// watchDebounce collapses bursts of file events into one render.
	watchDebounce = 300 * time.Millisecond
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output image; its extension picks the format
	layout     string  // layout descriptor or preset name
	aspect     string  // canvas aspect ratio
	radius     float64 // frame corner radius
	background string  // canvas color
	scale      float64 // output scale relative to the canvas
	thumb      bool    // also write <output>.thumb.jpg
	project    string  // project file to render instead of args
	bundle     string  // directory to bundle the project and photos into
	watch      bool    // re-render when inputs change
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command for headless export.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		output:     defaultOutput,
		layout:     pipeline.DefaultLayout,
		aspect:     pipeline.DefaultAspect,
		radius:     pipeline.DefaultRadius,
		background: pipeline.DefaultBackground,
		scale:      1,
	}

	cmd := &cobra.Command{
		Use:   "render [images...]",
		Short: "Compose photos into a collage image without the editor",
		Long: `Compose photos into a collage image without the editor.

Photos fill the layout's frames in order and repeat when there are more
frames than photos. Each photo is scaled to fill its frame without being
enlarged. With --project, a saved composition (including every photo's
position, zoom and rotation) is rendered instead.

Results are cached, keyed by the options and each photo's size and
modification time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.project == "" {
				return fmt.Errorf("give photos or --project")
			}
			return c.runRender(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output image (.png, .jpg or .gif)")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", opts.layout, "layout descriptor or preset name")
	cmd.Flags().StringVarP(&opts.aspect, "aspect", "a", opts.aspect, "aspect ratio: 1:1, 2:3 or 3:4")
	cmd.Flags().Float64Var(&opts.radius, "radius", opts.radius, "frame corner radius (0 for square frames)")
	cmd.Flags().StringVar(&opts.background, "background", opts.background, "canvas color as #rrggbb")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "output scale (0.5 halves the 1024px width)")
	cmd.Flags().BoolVar(&opts.thumb, "thumb", false, "also write a JPEG thumbnail next to the output")
	cmd.Flags().StringVar(&opts.project, "project", "", "render a saved project file")
	cmd.Flags().StringVar(&opts.bundle, "bundle", "", "copy the composition and its photos into this directory")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever a photo or the project changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached renders")

	return cmd
}

// pipelineOptions converts flags and arguments into pipeline options.
func (o renderOpts) pipelineOptions(args []string) (pipeline.Options, error) {
	if err := errors.ValidateOutputPath(o.output); err != nil {
		return pipeline.Options{}, err
	}
	spec := o.layout
	if i := findPreset(spec); i != "" {
		spec = i
	}
	radius := o.radius
	formats := []string{render.ExtFormat(o.output)}
	if o.thumb {
		formats = append(formats, pipeline.FormatThumb)
	}
	return pipeline.Options{
		Layout:     spec,
		Aspect:     o.aspect,
		Sources:    args,
		Project:    o.project,
		Refresh:    o.refresh,
		Formats:    formats,
		Radius:     &radius,
		Background: o.background,
		Scale:      o.scale,
	}, nil
}

// thumbPath derives the thumbnail path from the output path.
func thumbPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".thumb.jpg"
}

// runRender renders once, bundles if asked, and keeps re-rendering on
// changes with --watch.
func (c *CLI) runRender(ctx context.Context, args []string, opts renderOpts) error {
	popts, err := opts.pipelineOptions(args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.renderOnce(ctx, runner, popts, opts); err != nil {
		return err
	}
	if opts.bundle != "" {
		if err := c.bundle(ctx, runner, popts, opts.bundle); err != nil {
			return err
		}
	}
	if !opts.watch {
		return nil
	}
	return c.watch(ctx, args, opts.project, func() {
		if err := c.renderOnce(ctx, runner, popts, opts); err != nil {
			printError("%s", errors.UserMessage(err))
		}
	})
}

// renderOnce executes the pipeline and writes its artifacts.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, opts renderOpts) error {
	spinner := newSpinnerWithContext(ctx, "Rendering collage...")
	spinner.Start()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputs := map[string]string{render.ExtFormat(opts.output): opts.output}
	if opts.thumb {
		outputs[pipeline.FormatThumb] = thumbPath(opts.output)
	}
	for format, path := range outputs {
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeExportWrite, err, "write %s", path)
		}
	}
	prog.done("Rendered collage")

	printSuccess("Collage rendered")
	printFile(opts.output)
	if opts.thumb {
		printFile(outputs[pipeline.FormatThumb])
	}
	printStats(result.Stats.Frames, result.Stats.Sources, result.CacheInfo.RenderHit)
	return nil
}

// bundle captures the composition as a project and copies it with its
// photos into dir.
func (c *CLI) bundle(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, dir string) error {
	popts.Logger = c.Logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	sources, proj, err := pipeline.ResolveSources(popts)
	if err != nil {
		return err
	}
	sc, err := pipeline.Build(ctx, runner.Loader, popts, sources, proj)
	if err != nil {
		return err
	}
	aspect, err := scene.ParseAspectRatio(popts.Aspect)
	if proj != nil {
		aspect, err = proj.AspectRatio()
	}
	if err != nil {
		return err
	}

	path, err := project.Bundle(project.Capture(sc, aspect, *popts.Radius), dir)
	if err != nil {
		return err
	}
	printSuccess("Bundled %d photos", len(sc.Sources()))
	printFile(path)
	printNextStep("Edit", "collage --project "+path)
	return nil
}

// watch calls fn after changes to any photo, photo directory or the project
// file, until ctx is cancelled.
func (c *CLI) watch(ctx context.Context, args []string, projectPath string, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	targets, err := watchTargets(args, projectPath)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if err := w.Add(t); err != nil {
			return fmt.Errorf("watch %s: %w", t, err)
		}
		c.Logger.Debug("watching", "path", t)
	}
	printInfo("Watching %d paths for changes (ctrl+c to stop)", len(targets))

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			c.Logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
			timer = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-timer:
			timer = nil
			fn()
		}
	}
}

// watchTargets lists the directories to watch. Files are watched through
// their parent directory so editors that replace files on save still
// trigger events.
func watchTargets(args []string, projectPath string) ([]string, error) {
	paths := append([]string(nil), args...)
	if projectPath != "" {
		paths = append(paths, projectPath)
	}
	seen := map[string]bool{}
	var dirs []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", p)
		}
		dir := abs
		if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
			dir = filepath.Dir(abs)
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// relevant reports whether ev can change the render: writes, creations,
// removals and renames of images or project files.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return source.IsImage(ev.Name) || strings.HasSuffix(ev.Name, project.Ext)
}

// findPreset returns the descriptor of the preset named s, or "".
func findPreset(s string) string {
	if d, err := parseLayout(s); err == nil {
		return d.String()
	}
	return ""
}
