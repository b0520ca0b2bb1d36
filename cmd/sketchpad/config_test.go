package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"sketchpad/internal/config"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, err := runRoot(t, "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected the written path in the output, got %q", out)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	def := config.Default()
	if cfg.Window.Title != def.Window.Title || cfg.History.Max != def.History.Max || cfg.Shapes.Fill != def.Shapes.Fill {
		t.Fatalf("written config differs from defaults: %+v", cfg)
	}
}

func TestConfigInitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Window.Title = "mine"
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := runRoot(t, "config", "init", "--path", path); err == nil {
		t.Fatalf("expected an error for an existing file")
	}
	if got, _ := config.Load(path); got.Window.Title != "mine" {
		t.Fatalf("existing config was overwritten: %q", got.Window.Title)
	}

	if _, err := runRoot(t, "config", "init", "--path", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	if got, _ := config.Load(path); got.Window.Title != config.Default().Window.Title {
		t.Fatalf("--force should restore defaults, got %q", got.Window.Title)
	}
}
