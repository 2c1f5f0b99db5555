package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/otiai10/copy"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/source"
)

// BundleFile is the project file name inside a bundle.
const BundleFile = "project" + Ext

// bundlePhotos is the bundle subdirectory holding the copied photos.
const bundlePhotos = "photos"

// Bundle copies p and every photo it references into dir. Photo paths in
// the bundled project are relative to dir, so the directory can be moved
// as a whole. It returns the path of the bundled project file.
func Bundle(p *Project, dir string) (string, error) {
	if err := os.MkdirAll(filepath.Join(dir, bundlePhotos), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create bundle %s", dir)
	}

	out := *p
	out.Sources = slices.Clone(p.Sources)
	out.Frames = slices.Clone(p.Frames)
	out.dir = ""

	renamed := map[string]string{}
	rel := func(src string) (string, error) {
		if src == source.PlaceholderPath {
			return src, nil
		}
		if r, ok := renamed[src]; ok {
			return r, nil
		}
		name := fmt.Sprintf("%02d-%s", len(renamed)+1, filepath.Base(src))
		r := filepath.Join(bundlePhotos, name)
		if err := copy.Copy(p.Resolve(src), filepath.Join(dir, r), copy.Options{PreserveTimes: true}); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "copy %s", src)
		}
		renamed[src] = r
		return r, nil
	}

	for i, s := range out.Sources {
		r, err := rel(s)
		if err != nil {
			return "", err
		}
		out.Sources[i] = r
	}
	for i, fs := range out.Frames {
		r, err := rel(fs.Source)
		if err != nil {
			return "", err
		}
		out.Frames[i].Source = r
	}

	path := filepath.Join(dir, BundleFile)
	if err := out.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
