package source

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/barasher/go-exiftool"

	"github.com/matzehuels/collage/pkg/errors"
)

const exifDate = "2006:01:02 15:04:05"

// Metadata describes a photo source without decoding its pixels.
type Metadata struct {
	Path        string
	Width       int64
	Height      int64
	Format      string
	Make        string
	Model       string
	Orientation string
	Taken       time.Time
	ModTime     time.Time
}

// Inspector reads photo metadata. It prefers exiftool, which understands
// orientation tags and camera fields, and falls back to the standard image
// decoders when the exiftool binary is not installed.
type Inspector struct {
	et *exiftool.Exiftool
}

// NewInspector starts an exiftool process if one is available.
// The returned Inspector must be closed.
func NewInspector() *Inspector {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return &Inspector{}
	}
	return &Inspector{et: et}
}

// HasExiftool reports whether camera metadata is available.
func (in *Inspector) HasExiftool() bool { return in.et != nil }

// Close stops the exiftool process.
func (in *Inspector) Close() error {
	if in.et == nil {
		return nil
	}
	return in.et.Close()
}

// Inspect returns metadata for path. Missing optional fields are left blank.
func (in *Inspector) Inspect(path string) (Metadata, error) {
	md := Metadata{Path: path}

	fi, err := os.Stat(path)
	if err != nil {
		return md, errors.Wrap(errors.ErrCodeImageLoad, err, "stat %s", path)
	}
	md.ModTime = fi.ModTime()

	if in.et == nil {
		return decodeConfig(md)
	}

	fis := in.et.ExtractMetadata(path)
	if len(fis) == 0 || fis[0].Err != nil {
		return decodeConfig(md)
	}
	f := fis[0]

	md.Width, err = f.GetInt("ImageWidth")
	if err != nil {
		return decodeConfig(md)
	}
	md.Height, err = f.GetInt("ImageHeight")
	if err != nil {
		return decodeConfig(md)
	}

	md.Format, _ = f.GetString("FileType")
	md.Make, _ = f.GetString("Make")
	md.Model, _ = f.GetString("Model")
	md.Orientation, _ = f.GetString("Orientation")
	if ds, err := f.GetString("DateTimeOriginal"); err == nil {
		md.Taken, _ = time.Parse(exifDate, ds)
	}
	return md, nil
}

func decodeConfig(md Metadata) (Metadata, error) {
	f, err := os.Open(md.Path)
	if err != nil {
		return md, errors.Wrap(errors.ErrCodeImageLoad, err, "open %s", md.Path)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return md, errors.Wrap(errors.ErrCodeImageLoad, err, "decode %s", md.Path)
	}
	md.Width = int64(cfg.Width)
	md.Height = int64(cfg.Height)
	md.Format = format
	return md, nil
}
