package source

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/collage/pkg/errors"
)

// Loader turns a photo source into pixels.
type Loader interface {
	Load(path string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (image.Image, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (image.Image, error) { return f(path) }

// FileLoader decodes images from the local filesystem. EXIF orientation is
// applied so portrait shots come out upright. The placeholder sentinel path
// resolves to the built-in placeholder image.
type FileLoader struct{}

// Load implements Loader. Failures are reported as IMAGE_LOAD.
func (FileLoader) Load(path string) (image.Image, error) {
	if path == PlaceholderPath {
		return Placeholder(), nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageLoad, err, "load %s", path)
	}
	return img, nil
}

// imageExts lists the extensions accepted when scanning directories.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImage reports whether path has an extension the loader can decode.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}
