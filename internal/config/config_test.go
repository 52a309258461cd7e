package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "classic" {
		t.Errorf("expected classic, got %s", cfg.Name)
	}
	if cfg.Screen.Width != 240 || cfg.Screen.Height != 180 || cfg.Screen.FPS != 60 {
		t.Errorf("expected 240x180@60, got %dx%d@%d", cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.FPS)
	}
	if cfg.Truncate != 0.1 {
		t.Errorf("expected truncate 0.1, got %f", cfg.Truncate)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Width != 6 || cfg.Bodies[0].Height != 8 {
		t.Errorf("expected one 6x8 box, got %+v", cfg.Bodies)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			if err := GetPreset(name).Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("duo")
	a.Bodies[0].Mass = 99
	a.Controls[0].Bindings[0].Keys[0] = "z"

	b := GetPreset("duo")
	if b.Bodies[0].Mass != 1 {
		t.Errorf("expected untouched mass 1, got %f", b.Bodies[0].Mass)
	}
	if b.Controls[0].Bindings[0].Keys[0] != "w" {
		t.Errorf("expected untouched key w, got %s", b.Controls[0].Bindings[0].Keys[0])
	}
}

func TestListPresets(t *testing.T) {
	got := strings.Join(ListPresets(), ",")
	if got != "classic,drag,duo,freefall" {
		t.Errorf("expected sorted preset names, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no bodies", func(c *Config) { c.Bodies = nil }},
		{"zero mass", func(c *Config) { c.Bodies[0].Mass = 0 }},
		{"bad screen", func(c *Config) { c.Screen.Width = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -1 }},
		{"unknown force", func(c *Config) { c.Forces = []ForceConfig{{Kind: "magnet"}} }},
		{"negative drag", func(c *Config) { c.Forces = []ForceConfig{{Kind: KindDrag, Value: -1}} }},
		{"control body out of range", func(c *Config) { c.Controls[0].Body = 3 }},
		{"binding without keys", func(c *Config) { c.Controls[0].Bindings[0].Keys = nil }},
		{"backwards hold", func(c *Config) { c.Script = []HoldConfig{{Key: "w", From: 2, To: 1}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := GetPreset("drag")
	cfg.Dt = 0.02

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Name != "drag" || got.Dt != 0.02 {
		t.Errorf("expected drag with dt 0.02, got %s dt %f", got.Name, got.Dt)
	}
	if len(got.Bodies) != 2 || got.Bodies[1].Mass != 5 {
		t.Errorf("expected second body mass 5, got %+v", got.Bodies)
	}
}

func TestLoadStartsWithoutInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.yaml")
	src := "name: still\ndt: 0.1\nduration: 2\nbodies:\n  - {x: 50, y: 50, mass: 1}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Controls) != 0 || len(cfg.Script) != 0 || len(cfg.Forces) != 0 {
		t.Errorf("expected no controls, script or forces, got %d %d %d", len(cfg.Controls), len(cfg.Script), len(cfg.Forces))
	}
	if cfg.Screen.Width != DefaultWidth || cfg.Truncate != DefaultTruncate || cfg.HoldWindow != DefaultHoldWindow {
		t.Errorf("expected scalar defaults, got %+v", cfg)
	}
	if len(cfg.Bodies) != 1 {
		t.Fatalf("expected one body, got %+v", cfg.Bodies)
	}
	b := cfg.Bodies[0]
	if b.X != 50 || b.Width != DefaultBoxWidth || b.Height != DefaultBoxHeight || b.Color != DefaultColor {
		t.Errorf("expected body at x 50 with default box, got %+v", b)
	}
}

func TestLoadHJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.hjson")
	src := `{
  # comments are allowed
  name: sled
  dt: 0.05
  bodies: [
    { x: 1, y: 2, mass: 3 }
  ]
  forces: [
    { kind: gravity, value: 9.8 }
  ]
}`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "sled" || cfg.Dt != 0.05 {
		t.Errorf("expected sled dt 0.05, got %s %f", cfg.Name, cfg.Dt)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Mass != 3 {
		t.Errorf("expected one body of mass 3, got %+v", cfg.Bodies)
	}
	if len(cfg.Forces) != 1 || cfg.Forces[0].Kind != KindGravity {
		t.Errorf("expected gravity, got %+v", cfg.Forces)
	}
	if len(cfg.Controls) != 0 || len(cfg.Script) != 0 {
		t.Errorf("expected no controls or script, got %+v %+v", cfg.Controls, cfg.Script)
	}
	if cfg.Screen.Width != DefaultWidth {
		t.Errorf("unset screen should keep default width, got %d", cfg.Screen.Width)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFixedDt(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.FixedDt(); got != 1.0/60 {
		t.Errorf("expected one frame at 60 fps, got %f", got)
	}
	cfg.Dt = 0.01
	if got := cfg.FixedDt(); got != 0.01 {
		t.Errorf("expected 0.01, got %f", got)
	}
}

func TestForceSetParam(t *testing.T) {
	f := ForceConfig{Kind: KindBrake}
	if err := f.SetParam("multiplier", 4); err != nil || f.Multiplier != 4 {
		t.Errorf("expected multiplier 4, got %f (%v)", f.Multiplier, err)
	}
	if err := f.SetParam("rho", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
