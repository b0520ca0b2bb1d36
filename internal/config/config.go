package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "sketchpad"

// Config holds sketchpad configuration.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Canvas  CanvasConfig  `toml:"canvas"`
	History HistoryConfig `toml:"history"`
	Shapes  ShapesConfig  `toml:"shapes"`
}

// WindowConfig controls the host window.
type WindowConfig struct {
	Title   string  `toml:"title"`
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	UIScale float64 `toml:"ui_scale"` // 0 follows the monitor
}

// CanvasConfig controls the drawing surface.
type CanvasConfig struct {
	GridSpacing float64 `toml:"grid_spacing"`
	Background  string  `toml:"background"`
	Grid        string  `toml:"grid"`
	Selection   string  `toml:"selection"`
}

// HistoryConfig bounds the undo log.
type HistoryConfig struct {
	Max int `toml:"max"`
}

// ShapesConfig holds the styles given to new nodes.
type ShapesConfig struct {
	Fill        string  `toml:"fill"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`
	TextColor   string  `toml:"text_color"`
	FontSize    float64 `toml:"font_size"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "Sketchpad", Width: 1280, Height: 800},
		Canvas: CanvasConfig{
			GridSpacing: 40,
			Background:  "#fafbfd",
			Grid:        "#e3e8ef",
			Selection:   "#2b579a",
		},
		History: HistoryConfig{Max: 200},
		Shapes: ShapesConfig{
			Fill:        "#ffffff",
			Stroke:      "#1f2937",
			StrokeWidth: 2,
			TextColor:   "#111827",
			FontSize:    16,
		},
	}
}

// ConfigDir returns the sketchpad config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// DefaultPath is where Load and Save look when given an empty path.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config at path ("" for DefaultPath). A missing file yields
// the defaults; a malformed one is an error. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to path ("" for DefaultPath).
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	def := Default()
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.UIScale < 0 {
		c.Window.UIScale = 0
	}
	if c.Canvas.GridSpacing <= 0 {
		c.Canvas.GridSpacing = def.Canvas.GridSpacing
	}
	if c.History.Max <= 0 {
		c.History.Max = def.History.Max
	}
	if c.Shapes.StrokeWidth < 0 {
		c.Shapes.StrokeWidth = def.Shapes.StrokeWidth
	}
	if c.Shapes.FontSize <= 0 {
		c.Shapes.FontSize = def.Shapes.FontSize
	}
}
