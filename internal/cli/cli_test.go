package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects the package's output writer for one test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// isolate points the config and cache directories at temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(redisEnv, "")
}

// writePhoto writes a solid w×h PNG and returns its path.
func writePhoto(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	captureStderr(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootHelpListsKeys(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	help := out.String()
	for _, want := range []string{"Editor keys:", "collage [images...]", "--layout", "--project"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestRootSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"render", "layout", "presets", "inspect", "serve", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootUnknownFlag(t *testing.T) {
	if err := execute(t, "--no-such-flag"); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestRootFlagErrorPrintsUsageOnly(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var errOut bytes.Buffer
	root.SetArgs([]string{"--no-such-flag"})
	root.SetOut(io.Discard)
	root.SetErr(&errOut)

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(errOut.String(), "Usage:") {
		t.Errorf("usage not printed:\n%s", errOut.String())
	}
	if strings.Contains(errOut.String(), "Error:") {
		t.Errorf("error printed by the command as well as the caller:\n%s", errOut.String())
	}
}

func TestNewLoggerLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
