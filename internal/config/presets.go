package config

import "sort"

func steering(body int, up, left, down, right string, brakeKeys ...string) RouterConfig {
	return RouterConfig{
		Body: body,
		Bindings: []BindingConfig{
			{Keys: []string{up}, Force: ForceConfig{Kind: KindControl, Y: -DefaultControl}},
			{Keys: []string{down}, Force: ForceConfig{Kind: KindControl, Y: DefaultControl}},
			{Keys: []string{left}, Force: ForceConfig{Kind: KindControl, X: -DefaultControl}},
			{Keys: []string{right}, Force: ForceConfig{Kind: KindControl, X: DefaultControl}},
			{Keys: brakeKeys, Force: ForceConfig{Kind: KindBrake, Value: 2 * DefaultControl, Multiplier: 3}},
		},
	}
}

func screen() ScreenConfig {
	return ScreenConfig{Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS}
}

func box(x, y float64, color string) BodyConfig {
	return BodyConfig{X: x, Y: y, Mass: 1, Width: DefaultBoxWidth, Height: DefaultBoxHeight, Color: color}
}

var Presets = map[string]*Config{
	"classic": {
		Name: "classic", Screen: screen(), Truncate: DefaultTruncate,
		Duration: DefaultDuration, HoldWindow: DefaultHoldWindow,
		Bodies:   []BodyConfig{box(20, 20, DefaultColor)},
		Controls: []RouterConfig{steering(0, "w", "a", "s", "d", "lshift", "rshift")},
		Script: []HoldConfig{
			{Key: "d", From: 0, To: 1.5},
			{Key: "s", From: 0.5, To: 1.0},
			{Key: "lshift", From: 2.0, To: 4.0},
		},
	},
	"freefall": {
		Name: "freefall", Screen: screen(), Truncate: DefaultTruncate,
		Duration: 5, HoldWindow: DefaultHoldWindow, Dt: 1.0 / DefaultFPS,
		Bodies: []BodyConfig{
			box(40, 0, DefaultColor),
			{X: 120, Y: 0, VX: 5, Mass: 4, Width: 10, Height: 10, Color: "#29adff"},
		},
		Forces: []ForceConfig{{Kind: KindGravity, Value: 9.8}},
	},
	"drag": {
		Name: "drag", Screen: screen(), Truncate: DefaultTruncate,
		Duration: 5, HoldWindow: DefaultHoldWindow,
		Bodies: []BodyConfig{
			{X: 10, Y: 40, VX: 10, Mass: 1, Width: DefaultBoxWidth, Height: DefaultBoxHeight, Color: DefaultColor},
			{X: 10, Y: 100, VX: 10, Mass: 5, Width: DefaultBoxWidth, Height: DefaultBoxHeight, Color: "#00e436"},
		},
		Forces:   []ForceConfig{{Kind: KindDrag, Value: 1.5}},
		Controls: []RouterConfig{steering(0, "w", "a", "s", "d", "lshift", "rshift")},
		Script:   []HoldConfig{{Key: "d", From: 1, To: 3}},
	},
	"duo": {
		Name: "duo", Screen: screen(), Truncate: DefaultTruncate,
		Duration: DefaultDuration, HoldWindow: DefaultHoldWindow,
		Bodies: []BodyConfig{
			box(60, 90, DefaultColor),
			box(180, 90, "#ff77a8"),
		},
		Forces: []ForceConfig{{Kind: KindDrag, Value: 0.05}},
		Controls: []RouterConfig{
			steering(0, "w", "a", "s", "d", "lshift"),
			steering(1, "i", "j", "k", "l", "rshift"),
		},
		Script: []HoldConfig{
			{Key: "d", From: 0, To: 2},
			{Key: "j", From: 1, To: 2},
			{Key: "lshift", From: 3, To: 5},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
