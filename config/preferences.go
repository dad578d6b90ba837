package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"map-editor/core"
	"map-editor/scene"
)

// DefaultPath is where the editor keeps its preferences, relative to the
// working directory.
const DefaultPath = "config/editor.toml"

// Preferences holds the grid and snapping settings the transform engine
// reads. They persist across runs; map data is stored elsewhere.
type Preferences struct {
	GridEnabled bool `toml:"grid_enabled" yaml:"grid_enabled"`
	GridBinary  bool `toml:"grid_binary" yaml:"grid_binary"`
	GridPower   int  `toml:"grid_power" yaml:"grid_power"`

	SnapVertices    bool `toml:"snap_vertices" yaml:"snap_vertices"`
	SnapTranslation bool `toml:"snap_translation" yaml:"snap_translation"`
	SnapRotation    bool `toml:"snap_rotation" yaml:"snap_rotation"`
	SnapScale       bool `toml:"snap_scale" yaml:"snap_scale"`
	// ScaleToGrid snaps scale ratios so extents land on grid multiples
	// instead of 10% steps.
	ScaleToGrid bool `toml:"scale_to_grid" yaml:"scale_to_grid"`

	// RotationIncrement is the rotation snap step in degrees.
	RotationIncrement float64 `toml:"rotation_increment" yaml:"rotation_increment"`

	ShowGizmo bool   `toml:"show_gizmo" yaml:"show_gizmo"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
}

// Default returns the preferences of a fresh install: decimal grid at
// spacing 10, translation snapping on, gizmo visible.
func Default() Preferences {
	return Preferences{
		GridEnabled:       true,
		GridBinary:        false,
		GridPower:         2,
		SnapVertices:      false,
		SnapTranslation:   true,
		SnapRotation:      false,
		SnapScale:         false,
		ScaleToGrid:       false,
		RotationIncrement: 15,
		ShowGizmo:         true,
		LogLevel:          "info",
	}
}

// Grid converts the grid settings, clamping the power to the grid type.
func (p Preferences) Grid() scene.Grid {
	g := scene.NewGrid(p.GridBinary, p.GridPower)
	g.Enabled = p.GridEnabled
	return g
}

// GridSnapActive reports whether translation snaps to the grid.
func (p Preferences) GridSnapActive() bool {
	return p.GridEnabled && p.GridPower > 0 && p.SnapTranslation
}

// Load reads preferences from a .toml, .yaml or .yml file. A missing file
// yields Default(); keys absent from the file keep their default values.
func Load(path string) (Preferences, error) {
	prefs := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogDebug("no preferences at %s, using defaults", path)
			return prefs, nil
		}
		return prefs, fmt.Errorf("read preferences %q: %w", path, err)
	}

	if err := decode(path, data, &prefs); err != nil {
		return Default(), err
	}
	return prefs, nil
}

// Save writes prefs in the format implied by the extension of path,
// creating the parent directory if needed.
func Save(path string, prefs Preferences) error {
	data, err := encode(path, prefs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write preferences %q: %w", path, err)
	}
	return nil
}

func decode(path string, data []byte, prefs *Preferences) error {
	switch format(path) {
	case ".toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(prefs); err != nil {
			return fmt.Errorf("parse toml %q: %w", path, err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, prefs); err != nil {
			return fmt.Errorf("parse yaml %q: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", core.ErrUnsupportedConfig, filepath.Ext(path))
	}
	return nil
}

func encode(path string, prefs Preferences) ([]byte, error) {
	switch format(path) {
	case ".toml":
		data, err := toml.Marshal(prefs)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return data, nil
	case ".yaml":
		data, err := yaml.Marshal(prefs)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedConfig, filepath.Ext(path))
}

func format(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" {
		return ".yaml"
	}
	return ext
}
