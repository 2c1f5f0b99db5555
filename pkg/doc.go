// Package pkg provides the core libraries for Collage photo composition.
//
// # Overview
//
// Collage partitions a fixed-aspect canvas into frames, fills each frame
// with a photo that can be panned, zoomed and rotated independently, lets
// photos be swapped by dragging them between frames, and exports the
// composition as a raster image. The pkg directory is organized into four
// areas:
//
//  1. Geometry and layout: [geom], [layout]
//  2. Composition: [scene], [editor], [project]
//  3. Output: [render], [fonts]
//  4. Orchestration: [pipeline], [cache], [source], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	Photo files / project file
//	         ↓
//	    [source] package (expand directories, cycle sources, decode)
//	         ↓
//	    [layout] package (descriptor → frame rectangles)
//	         ↓
//	    [scene] package (frames + photo transforms + swap protocol)
//	         ↓
//	    [render] package (PNG/JPEG/GIF export, thumbnails, previews)
//
// # Quick Start
//
// Compose four photos in a 2x2 grid and save it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/collage/pkg/layout"
//	    "github.com/matzehuels/collage/pkg/render"
//	    "github.com/matzehuels/collage/pkg/scene"
//	    "github.com/matzehuels/collage/pkg/source"
//	)
//
//	desc, _ := layout.Parse("grid:2x2")
//	sc := scene.New(source.FileLoader{})
//	canvas := scene.NewCanvas(scene.DefaultCanvasWidth, scene.DefaultAspectRatio)
//	_ = sc.Rebuild(ctx, desc, canvas, []string{"a.jpg", "b.jpg"})
//	_ = render.ExportFile(ctx, sc, "out.png")
//
// # Main Packages
//
// [layout] - Layout descriptors ("grid:3x3", "columns:3/2B/3",
// "rows:1B/2/3/2B") and the partitioning algorithms that turn them into
// frame rectangles. A "B" suffix doubles a strip's weight.
//
// [scene] - The composition: canvas, frames, photos with their pan, zoom and
// rotation state, hit-testing, and the drag-and-drop swap protocol.
//
// [editor] - Input handling on top of a scene: keyboard and pointer events,
// the transform controller state machine, settings and help text.
//
// [project] - Saving and restoring a composition as TOML, and bundling it
// with its photos.
//
// [render] - Raster export, thumbnails, wireframes and terminal previews.
//
// [pipeline] - Headless compose-and-export with caching, shared by the CLI
// and the preview server.
//
// [cache] - File, Redis and null render caches with key derivation from
// options and photo stamps.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
package pkg
