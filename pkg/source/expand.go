package source

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/matzehuels/collage/pkg/errors"
)

// Expand resolves command-line arguments into an ordered list of absolute
// photo paths. Files are kept as given (an unreadable file surfaces later as
// IMAGE_LOAD and is replaced by the placeholder). Directories are walked in
// lexical order and contribute every image file they contain; hidden entries
// are skipped.
//
// An empty result is not an error here: callers decide whether to fall back
// to the placeholder.
func Expand(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", arg)
		}

		fi, err := os.Stat(abs)
		if err != nil || !fi.IsDir() {
			out = append(out, abs)
			continue
		}

		found, err := walk(abs)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func walk(root string) ([]string, error) {
	var found []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && filepath.Base(path)[0] == '.' {
				return godirwalk.SkipThis
			}
			if de.IsRegular() && IsImage(path) {
				found = append(found, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", root)
	}
	return found, nil
}

// OrPlaceholder returns paths unchanged, or a single placeholder source when
// paths is empty.
func OrPlaceholder(paths []string) []string {
	if len(paths) == 0 {
		return []string{PlaceholderPath}
	}
	return paths
}
