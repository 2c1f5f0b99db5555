package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/project"
	"github.com/matzehuels/collage/pkg/scene"
	"github.com/matzehuels/collage/pkg/source"
)

// =============================================================================
// Build Stage
// =============================================================================

// ResolveSources returns the photo list a run will use: the project's
// sources when a project is set, otherwise the expanded source arguments.
// An empty list falls back to the placeholder.
func ResolveSources(opts Options) ([]string, *project.Project, error) {
	if opts.Project != "" {
		p, err := project.Load(opts.Project)
		if err != nil {
			return nil, nil, err
		}
		sources := make([]string, len(p.Sources))
		for i, s := range p.Sources {
			sources[i] = p.Resolve(s)
		}
		return source.OrPlaceholder(sources), p, nil
	}

	sources, err := source.Expand(opts.Sources)
	if err != nil {
		return nil, nil, err
	}
	if len(sources) == 0 {
		if opts.Logger != nil {
			opts.Logger.Warn("no photos found, using placeholder")
		}
		sources = source.OrPlaceholder(sources)
	}
	return sources, nil, nil
}

// Build lays out sources and loads every photo into a new scene. With a
// project, the project's layout and photo transforms are restored instead
// of opts.Layout and opts.Aspect; photos that no longer load are logged and
// left as placeholders.
func Build(ctx context.Context, loader source.Loader, opts Options, sources []string, p *project.Project) (*scene.Scene, error) {
	sc := scene.New(loader)

	if p != nil {
		err := p.Apply(ctx, sc)
		switch {
		case errors.Is(err, errors.ErrCodeImageLoad):
			opts.Logger.Warn("project restored with missing photos", "err", err)
		case err != nil:
			return nil, fmt.Errorf("apply project: %w", err)
		}
		return sc, nil
	}

	desc, err := layout.Parse(opts.Layout)
	if err != nil {
		return nil, err
	}
	aspect, err := scene.ParseAspectRatio(opts.Aspect)
	if err != nil {
		return nil, err
	}
	if err := sc.Rebuild(ctx, desc, scene.NewCanvas(scene.DefaultCanvasWidth, aspect), sources); err != nil {
		return nil, err
	}
	return sc, nil
}
