package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/collage/pkg/errors"
	"github.com/matzehuels/collage/pkg/pipeline"
	"github.com/matzehuels/collage/pkg/project"
)

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestRenderPipelineOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    renderOpts
		layout  string
		formats []string
		code    errors.Code
	}{
		{
			name:    "descriptor",
			opts:    renderOpts{output: "out.png", layout: "grid:2x2"},
			layout:  "grid:2x2",
			formats: []string{"png"},
		},
		{
			name:    "preset with thumb",
			opts:    renderOpts{output: "out.jpg", layout: "Grid 3x3", thumb: true},
			layout:  "grid:3x3",
			formats: []string{"jpg", pipeline.FormatThumb},
		},
		{
			name: "bad extension",
			opts: renderOpts{output: "out.bmp", layout: "grid:2x2"},
			code: errors.ErrCodeInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.pipelineOptions([]string{"a.png"})
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Layout != tt.layout {
				t.Errorf("Layout = %q, want %q", got.Layout, tt.layout)
			}
			if strings.Join(got.Formats, ",") != strings.Join(tt.formats, ",") {
				t.Errorf("Formats = %v, want %v", got.Formats, tt.formats)
			}
			if got.Radius == nil {
				t.Error("Radius not set")
			}
		})
	}
}

func TestThumbPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"collage.png", "collage.thumb.jpg"},
		{"out/final.jpeg", "out/final.thumb.jpg"},
		{"noext", "noext.thumb.jpg"},
	}
	for _, tt := range tests {
		if got := thumbPath(tt.in); got != tt.want {
			t.Errorf("thumbPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	captureStdout(t)
	dir := t.TempDir()
	a := writePhoto(t, dir, "a.png", 40, 30, color.RGBA{255, 0, 0, 255})
	b := writePhoto(t, dir, "b.png", 30, 40, color.RGBA{0, 0, 255, 255})
	out := filepath.Join(dir, "out.png")

	err := execute(t, "render", a, b,
		"-o", out, "--layout", "grid:2x2", "--aspect", "1:1", "--thumb", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}

	img := decodeFile(t, out)
	if got := img.Bounds().Size(); got != image.Pt(1024, 1024) {
		t.Errorf("collage size = %v, want 1024x1024", got)
	}

	data, err := os.ReadFile(thumbPath(out))
	if err != nil {
		t.Fatal(err)
	}
	thumb, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if b := thumb.Bounds(); max(b.Dx(), b.Dy()) != pipeline.DefaultThumbSize {
		t.Errorf("thumbnail size = %v", b.Size())
	}
}

func TestRenderCommandScaleAndBackground(t *testing.T) {
	isolate(t)
	captureStdout(t)
	dir := t.TempDir()
	a := writePhoto(t, dir, "a.png", 40, 30, color.White)
	out := filepath.Join(dir, "small.png")

	err := execute(t, "render", a, "-o", out, "--layout", "grid:1x1", "--aspect", "3:4",
		"--scale", "0.5", "--radius", "0", "--background", "#00ff00", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	img := decodeFile(t, out)
	if got := img.Bounds().Size(); got != image.Pt(512, 384) {
		t.Errorf("size = %v, want 512x384", got)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	isolate(t)
	captureStdout(t)
	dir := t.TempDir()
	a := writePhoto(t, dir, "a.png", 10, 10, color.White)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no inputs", []string{"render"}, ""},
		{"bad layout", []string{"render", a, "--layout", "spiral:3", "-o", filepath.Join(dir, "x.png")}, errors.ErrCodeInvalidLayout},
		{"bad aspect", []string{"render", a, "--aspect", "wide", "-o", filepath.Join(dir, "x.png")}, errors.ErrCodeInvalidAspect},
		{"bad output", []string{"render", a, "-o", filepath.Join(dir, "x.tiff")}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, append(tt.args, "--no-cache")...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderBundle(t *testing.T) {
	isolate(t)
	captureStdout(t)
	dir := t.TempDir()
	a := writePhoto(t, dir, "a.png", 40, 30, color.White)
	b := writePhoto(t, dir, "b.png", 40, 30, color.Black)
	bundle := filepath.Join(dir, "bundle")

	err := execute(t, "render", a, b, "-o", filepath.Join(dir, "out.png"),
		"--layout", "grid:2x1", "--aspect", "1:1", "--bundle", bundle, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}

	p, err := project.Load(filepath.Join(bundle, project.BundleFile))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Frames) != 2 {
		t.Errorf("bundled %d frames, want 2", len(p.Frames))
	}
	for _, s := range p.Sources {
		if _, err := os.Stat(p.Resolve(s)); err != nil {
			t.Errorf("bundled photo %s missing: %v", s, err)
		}
	}

	// The bundle renders on its own.
	out := filepath.Join(dir, "from-bundle.png")
	if err := execute(t, "render", "--project", filepath.Join(bundle, project.BundleFile), "-o", out, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	if got := decodeFile(t, out).Bounds().Size(); got != image.Pt(1024, 1024) {
		t.Errorf("project render size = %v", got)
	}
}

func TestWatchTargets(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	a := writePhoto(t, dir, "a.png", 2, 2, color.White)
	b := writePhoto(t, dir, "b.png", 2, 2, color.White)

	got, err := watchTargets([]string{a, b, sub}, filepath.Join(dir, "p"+project.Ext))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != dir || got[1] != sub {
		t.Errorf("watchTargets = %v, want [%s %s]", got, dir, sub)
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/p/a.jpg", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/p/a.PNG", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/p/x" + project.Ext, Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/p/a.jpg", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/p/notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := relevant(tt.ev); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestWatchRerenders(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()
	a := writePhoto(t, dir, "a.png", 4, 4, color.White)

	c := New(&bytes.Buffer{}, LogInfo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- c.watch(ctx, []string{a}, "", func() { calls <- struct{}{} })
	}()

	// Give the watcher time to register before touching the file.
	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(a, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("no re-render after write")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}
