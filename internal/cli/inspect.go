package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/source"
)

// inspectCommand creates the inspect command, which lists photo metadata.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <images...>",
		Short: "List size, format and camera details of photos",
		Long: `List size, format and camera details of photos.

Directories are searched recursively. Camera fields and capture times need
exiftool on the PATH; without it only size and format are shown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args)
		},
	}
}

func (c *CLI) runInspect(args []string) error {
	paths, err := source.Expand(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no photos found")
	}

	in := source.NewInspector()
	defer in.Close()
	if !in.HasExiftool() {
		c.Logger.Debug("exiftool not found, camera fields unavailable")
	}

	rows := make([][]string, 0, len(paths))
	failed := 0
	for _, p := range paths {
		md, err := in.Inspect(p)
		if err != nil {
			c.Logger.Warn("skip photo", "path", p, "err", err)
			failed++
			continue
		}
		rows = append(rows, metadataRow(md))
	}

	fmt.Fprintln(stdout, renderTable([]string{"Photo", "Size", "Format", "Camera", "Orientation", "Taken"}, rows))
	if failed > 0 {
		printWarning("%d of %d photos could not be read", failed, len(paths))
	}
	return nil
}

func metadataRow(md source.Metadata) []string {
	camera := md.Make
	if md.Model != "" {
		if camera != "" {
			camera += " "
		}
		camera += md.Model
	}
	taken := ""
	if !md.Taken.IsZero() {
		taken = md.Taken.Format("2006-01-02 15:04")
	}
	return []string{
		filepath.Base(md.Path),
		fmt.Sprintf("%dx%d", md.Width, md.Height),
		md.Format,
		camera,
		md.Orientation,
		taken,
	}
}
