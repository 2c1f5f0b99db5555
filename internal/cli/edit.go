package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/collage/pkg/editor"
	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/source"
)

// editOpts holds the root command's flags.
type editOpts struct {
	config  string
	project string
	layout  string
	aspect  string
	output  string
	logFile string
}

// runEdit opens the interactive editor over args.
func (c *CLI) runEdit(ctx context.Context, args []string, opts editOpts) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.layout != "" {
		cfg.Layout = opts.layout
	}
	if opts.aspect != "" {
		cfg.Aspect = opts.aspect
	}
	if opts.output != "" {
		cfg.OutputPath = opts.output
	}

	sources, err := source.Expand(args)
	if err != nil {
		return err
	}

	logger, closer, err := fileLogger(opts.logFile, c.Logger.GetLevel())
	if err != nil {
		return err
	}
	defer closer.Close()
	// The editor owns the terminal; events go to the log file.
	observability.UseLogger(logger)

	ed, err := editor.New(ctx, &cfg, sources, source.FileLoader{}, logger)
	if err != nil {
		return err
	}
	if opts.project != "" {
		ed.SetProjectPath(opts.project)
		if _, statErr := os.Stat(opts.project); statErr == nil {
			err := ed.OpenProject(ctx, opts.project)
			switch {
			case errors.Is(err, errors.ErrCodeImageLoad):
				logger.Warn("project opened with missing photos", "err", err)
			case err != nil:
				return err
			}
		}
	}

	m := NewEditorModel(ctx, ed)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("editor: %w", err)
	}

	if path, err := editor.ConfigPath(); err == nil && opts.config == "" {
		if err := persistDirs(path, ed.Config()); err != nil {
			c.Logger.Debug("config not saved", "err", err)
		}
	}
	return nil
}

// persistDirs records the last-used output path and directory in the
// config file at path, if one exists, so the next session starts there.
func persistDirs(path string, live *editor.Config) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	saved, err := editor.LoadConfig(path)
	if err != nil {
		return err
	}
	if saved.OutputPath == live.OutputPath && saved.LastDirectory == live.LastDirectory {
		return nil
	}
	saved.OutputPath = live.OutputPath
	saved.LastDirectory = live.LastDirectory
	return saved.Save(path)
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
