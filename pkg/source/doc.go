// Package source supplies the photos a collage is built from.
//
// # Cycling
//
// [Cycle] hands out photo paths in order and wraps around, so a layout with
// more frames than photos repeats them:
//
//	c, _ := source.NewCycle([]string{"a.jpg", "b.jpg", "c.jpg"})
//	c.Next() // a.jpg
//	c.Next() // b.jpg
//	c.Next() // c.jpg
//	c.Next() // a.jpg
//
// # Loading
//
// [Loader] is the seam between the scene and the filesystem. [FileLoader]
// decodes JPEG, PNG, GIF, BMP and TIFF with EXIF orientation applied. When no
// photos are given at all, [OrPlaceholder] substitutes [PlaceholderPath],
// which every FileLoader resolves to a generated "no photo" tile.
//
// # Discovery
//
// [Expand] turns command-line arguments into absolute paths, walking
// directories for image files. [Inspector] reads dimensions and camera fields
// through exiftool when it is installed.
package source
