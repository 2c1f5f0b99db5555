package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/collage/pkg/layout"
)

func TestLayoutCommandTable(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	if err := execute(t, "layout", "columns:3/2B/3", "--aspect", "1:1"); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "columns:3/2B/3") || !strings.Contains(got, "8 frames on 1024x1024") {
		t.Errorf("missing header:\n%s", got)
	}
	for _, want := range []string{"#1", "#8", "Width", "Height"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}

func TestLayoutCommandPresetName(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	name := layout.Presets[layout.DefaultPreset].Name
	if err := execute(t, "layout", name); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), layout.Presets[layout.DefaultPreset].Descriptor.String()) {
		t.Errorf("preset %q not resolved:\n%s", name, out.String())
	}
}

func TestLayoutCommandDOT(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	if err := execute(t, "layout", "grid:2x2", "--dot", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "digraph") {
		t.Errorf("not DOT output:\n%s", out.String())
	}
}

func TestLayoutCommandWireframeFile(t *testing.T) {
	isolate(t)
	captureStdout(t)
	path := filepath.Join(t.TempDir(), "wire.png")

	if err := execute(t, "layout", "rows:1/2B", "--wireframe", "--width", "300", "--aspect", "3:4", "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 225 {
		t.Errorf("wireframe size = %v, want 300x225", b.Size())
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	isolate(t)
	captureStdout(t)
	tests := []struct {
		name string
		args []string
	}{
		{"bad descriptor", []string{"layout", "grid:0x3"}},
		{"bad aspect", []string{"layout", "grid:2x2", "--aspect", "x"}},
		{"two formats", []string{"layout", "grid:2x2", "--dot", "--svg"}},
		{"no argument", []string{"layout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPresetsCommand(t *testing.T) {
	out := captureStdout(t)

	if err := execute(t, "presets"); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, p := range layout.Presets {
		if !strings.Contains(got, p.Name) {
			t.Errorf("presets missing %q", p.Name)
		}
	}
	if !strings.Contains(got, "default") {
		t.Error("default preset not marked")
	}
}

func TestLayoutOptsFormat(t *testing.T) {
	tests := []struct {
		opts    layoutOpts
		want    string
		wantErr bool
	}{
		{layoutOpts{}, "", false},
		{layoutOpts{dot: true}, "dot", false},
		{layoutOpts{wireframe: true}, "wireframe", false},
		{layoutOpts{png: true, svg: true}, "", true},
	}
	for _, tt := range tests {
		got, err := tt.opts.format()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("format(%+v) = %q, %v", tt.opts, got, err)
		}
	}
}
