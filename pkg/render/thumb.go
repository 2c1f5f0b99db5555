package render

import (
	"bytes"
	"image"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"github.com/matzehuels/collage/pkg/errors"
)

// DefaultThumbSize is the longest edge of a thumbnail in pixels.
const DefaultThumbSize = 256

// ThumbQuality is the JPEG quality used for thumbnails.
const ThumbQuality = 85

// Thumbnail downsamples img with a Lanczos filter so that its longest edge
// is at most size pixels. Images already small enough are returned as is.
func Thumbnail(img image.Image, size int) image.Image {
	if size <= 0 {
		size = DefaultThumbSize
	}
	w, h := thumbSize(img.Bounds().Dx(), img.Bounds().Dy(), size)
	if w == img.Bounds().Dx() && h == img.Bounds().Dy() {
		return img
	}
	return transform.Resize(img, w, h, transform.Lanczos)
}

func thumbSize(w, h, size int) (int, int) {
	if w <= size && h <= size {
		return w, h
	}
	f := float64(size) / float64(max(w, h))
	return max(1, int(math.Round(float64(w)*f))), max(1, int(math.Round(float64(h)*f)))
}

// ThumbnailJPEG returns a JPEG-encoded thumbnail of img.
func ThumbnailJPEG(img image.Image, size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imgio.JPEGEncoder(ThumbQuality)(&buf, Thumbnail(img, size)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportWrite, err, "encode thumbnail")
	}
	return buf.Bytes(), nil
}

// SaveThumbnail writes a JPEG thumbnail of img to path.
func SaveThumbnail(img image.Image, path string, size int) error {
	if err := imgio.Save(path, Thumbnail(img, size), imgio.JPEGEncoder(ThumbQuality)); err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "write thumbnail %s", path)
	}
	return nil
}
