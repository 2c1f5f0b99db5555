package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/collage/pkg/editor"
)

func TestLoadConfig(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != editor.DefaultConfig() {
		t.Errorf("missing default file should give defaults, got %+v", cfg)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}

	path := filepath.Join(t.TempDir(), "c.toml")
	want := editor.DefaultConfig()
	want.FrameRadius = 4
	want.Layout = "rows:2/3"
	if err := want.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.FrameRadius != 4 || got.Layout != "rows:2/3" {
		t.Errorf("loaded %+v", got)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	if err := execute(t, "config", "init"); err != nil {
		t.Fatal(err)
	}
	path, err := editor.ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out.Reset()
	if err := execute(t, "config", "init"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("second init should warn, got %q", out.String())
	}

	out.Reset()
	if err := execute(t, "config", "show"); err != nil {
		t.Fatal(err)
	}
	var shown editor.Config
	if _, err := toml.Decode(out.String(), &shown); err != nil {
		t.Fatalf("show output is not TOML: %v\n%s", err, out.String())
	}
	if shown != editor.DefaultConfig() {
		t.Errorf("shown config = %+v", shown)
	}

	out.Reset()
	if err := execute(t, "config", "path"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Errorf("config path = %q, want %q", out.String(), path)
	}
}

func TestPersistDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	live := editor.DefaultConfig()
	live.OutputPath = "/tmp/out.png"
	live.LastDirectory = "/tmp"

	if err := persistDirs(path, &live); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("persistDirs should not create a config file")
	}

	saved := editor.DefaultConfig()
	saved.FrameRadius = 7
	if err := saved.Save(path); err != nil {
		t.Fatal(err)
	}
	if err := persistDirs(path, &live); err != nil {
		t.Fatal(err)
	}
	got, err := editor.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputPath != "/tmp/out.png" || got.LastDirectory != "/tmp" || got.FrameRadius != 7 {
		t.Errorf("persisted %+v", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/pics/a.png"); got != filepath.Join(home, "pics", "a.png") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs/a.png"); got != "/abs/a.png" {
		t.Errorf("absolute path changed: %q", got)
	}
}
