// Package cli implements the collage command-line interface.
//
// Running collage with photo arguments opens the interactive editor in the
// terminal. Subcommands cover the headless side: rendering collages,
// previewing layouts, inspecting photos, serving previews over HTTP and
// managing the render cache and configuration.
//
// # Commands
//
//   - (root): interactive editor over the given photos and directories
//   - render: compose and export without the editor, optionally watching
//   - layout, presets: show how a layout partitions the canvas
//   - inspect: print photo metadata
//   - serve: HTTP preview server
//   - cache, config, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The editor
// owns the terminal, so its log goes to --log-file instead of stderr.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/buildinfo"
	"github.com/matzehuels/collage/pkg/cache"
	"github.com/matzehuels/collage/pkg/editor"
	"github.com/matzehuels/collage/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "collage"

	// redisEnv names a Redis URL used as the render cache when set.
	redisEnv = "COLLAGE_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself runs the interactive editor.
func (c *CLI) RootCommand() *cobra.Command {
	var opts editOpts

	root := &cobra.Command{
		Use:   "collage [images...]",
		Short: "Compose photos into collages",
		Long: `Collage arranges photos in grid, column and row layouts, lets you pan,
zoom, rotate and swap them interactively, and exports the result.

Arguments may be image files or directories; directories contribute every
image they contain. Without arguments a placeholder photo fills the frames.

Editor keys:
` + editor.HelpText(),
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	// The caller reports err; only the usage is added here.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.PrintErrln(cmd.UsageString())
		return err
	})

	root.Flags().StringVar(&opts.config, "config", "", "config file (default: $XDG_CONFIG_HOME/collage/config.toml)")
	root.Flags().StringVar(&opts.project, "project", "", "project file to open and save with 'w'")
	root.Flags().StringVarP(&opts.layout, "layout", "l", "", "layout descriptor or preset name (e.g. grid:3x3, \"Columns 3/2B/3\")")
	root.Flags().StringVarP(&opts.aspect, "aspect", "a", "", "aspect ratio: 1:1, 2:3 or 3:4")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "output path for 's'")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "write the editor log to this file")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, nil, c.Logger), nil
}

// newCache picks the render cache: none with --no-cache, Redis when
// COLLAGE_REDIS_URL is set and reachable, otherwise the local file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := os.Getenv(redisEnv); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err == nil {
			c.Logger.Debug("using redis cache", "url", url)
			return rc, nil
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/collage/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}
