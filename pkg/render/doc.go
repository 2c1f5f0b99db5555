// Package render turns a collage scene into pixels.
//
// # Export
//
// [Export] flattens a [scene.Scene] into an opaque image of exactly the
// canvas size. The buffer starts black; the scene paints its background
// (inset by one pixel) and each frame clipped to its rounded rectangle,
// with a white border as wide as the corner radius. The selection is
// cleared first so the highlight never appears in output.
//
//	img, err := render.Export(ctx, sc, render.WithStyle(scene.DefaultStyle(15)))
//	err = render.Save(ctx, img, "out.png")
//
// [Save] picks the encoder from the file extension (png, jpg, jpeg, gif).
// [Encode] writes to any io.Writer, which the HTTP server uses.
//
// # Surfaces
//
// [Surface] implements [scene.Surface] on a gg context. [Paint] owns the
// surface for the duration of one draw and always unwinds it, including
// when drawing panics.
//
// # Previews
//
// [Thumbnail] and [ThumbnailJPEG] downsample with a Lanczos filter.
// [Wireframe] draws a layout's numbered cells without loading images, and
// [Terminal] prints an image with half-block characters for the TUI.
package render
