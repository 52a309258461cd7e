package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 240
	DefaultHeight     = 180
	DefaultFPS        = 60
	DefaultTruncate   = 0.1
	DefaultDuration   = 10.0
	DefaultHoldWindow = 0.15
	DefaultControl    = 70.0
	DefaultBoxWidth   = 6
	DefaultBoxHeight  = 8
	DefaultColor      = "#ffa300"
)

// Force kinds understood by the scene builder.
const (
	KindGravity = "gravity"
	KindField   = "field"
	KindDrag    = "drag"
	KindControl = "control"
	KindBrake   = "brake"
)

type Config struct {
	Name       string         `yaml:"name" json:"name"`
	Screen     ScreenConfig   `yaml:"screen" json:"screen"`
	Truncate   float64        `yaml:"truncate" json:"truncate"`
	Dt         float64        `yaml:"dt" json:"dt"`
	Duration   float64        `yaml:"duration" json:"duration"`
	HoldWindow float64        `yaml:"hold_window" json:"hold_window"`
	Bodies     []BodyConfig   `yaml:"bodies" json:"bodies"`
	Forces     []ForceConfig  `yaml:"forces" json:"forces"`
	Controls   []RouterConfig `yaml:"controls" json:"controls"`
	Script     []HoldConfig   `yaml:"script" json:"script"`
}

type ScreenConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	FPS    int `yaml:"fps" json:"fps"`
}

type BodyConfig struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	VX     float64 `yaml:"vx" json:"vx"`
	VY     float64 `yaml:"vy" json:"vy"`
	Mass   float64 `yaml:"mass" json:"mass"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Color  string  `yaml:"color" json:"color"`
}

// ForceConfig describes one force. Value is the gravity magnitude, the drag
// coefficient or the brake force depending on Kind; X and Y are the field
// acceleration or the control force.
type ForceConfig struct {
	Kind       string  `yaml:"kind" json:"kind"`
	Value      float64 `yaml:"value,omitempty" json:"value,omitempty"`
	X          float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y          float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Multiplier float64 `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
}

type RouterConfig struct {
	Body     int             `yaml:"body" json:"body"`
	Bindings []BindingConfig `yaml:"bindings" json:"bindings"`
}

type BindingConfig struct {
	Keys  []string    `yaml:"keys" json:"keys"`
	Force ForceConfig `yaml:"force" json:"force"`
}

type HoldConfig struct {
	Key  string  `yaml:"key" json:"key"`
	From float64 `yaml:"from" json:"from"`
	To   float64 `yaml:"to" json:"to"`
}

// DefaultConfig returns the classic scene: one box steered with WASD and
// braked with either shift key.
func DefaultConfig() *Config {
	return GetPreset("classic")
}

// base holds the scalar defaults a loaded file starts from. Bodies, forces,
// controls and script come only from the file.
func base() *Config {
	return &Config{
		Screen:     screen(),
		Truncate:   DefaultTruncate,
		Duration:   DefaultDuration,
		HoldWindow: DefaultHoldWindow,
	}
}

// Load reads a YAML file, or an HJSON file when the extension is .hjson.
// Omitted scalars keep their defaults; omitted lists stay empty.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base()
	if strings.EqualFold(filepath.Ext(path), ".hjson") {
		err = unmarshalHJSON(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range cfg.Bodies {
		b := &cfg.Bodies[i]
		if b.Width == 0 {
			b.Width = DefaultBoxWidth
		}
		if b.Height == 0 {
			b.Height = DefaultBoxHeight
		}
		if b.Color == "" {
			b.Color = DefaultColor
		}
	}
	return cfg, nil
}

func unmarshalHJSON(data []byte, cfg *Config) error {
	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return err
	}
	js, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(js, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FixedDt returns Dt, or one frame at the configured rate when Dt is zero.
// A zero Dt means live hosts step with the wall clock.
func (c *Config) FixedDt() float64 {
	if c.Dt > 0 {
		return c.Dt
	}
	return 1.0 / float64(c.Screen.FPS)
}

// SetParam assigns one numeric field of a force by name.
func (f *ForceConfig) SetParam(name string, value float64) error {
	switch name {
	case "value":
		f.Value = value
	case "x":
		f.X = value
	case "y":
		f.Y = value
	case "multiplier":
		f.Multiplier = value
	default:
		return fmt.Errorf("unknown force parameter: %s", name)
	}
	return nil
}

// Validate reports the first configuration mistake found.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Screen.FPS)
	}
	if c.Truncate < 0 {
		return fmt.Errorf("truncate must not be negative, got %f", c.Truncate)
	}
	if c.Dt < 0 {
		return fmt.Errorf("dt must not be negative, got %f", c.Dt)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("at least one body is required")
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("body %d: mass must be positive, got %f", i, b.Mass)
		}
	}
	for i, f := range c.Forces {
		if err := f.validate(); err != nil {
			return fmt.Errorf("force %d: %w", i, err)
		}
	}
	for i, r := range c.Controls {
		if r.Body < 0 || r.Body >= len(c.Bodies) {
			return fmt.Errorf("control %d: body %d out of range", i, r.Body)
		}
		for j, b := range r.Bindings {
			if len(b.Keys) == 0 {
				return fmt.Errorf("control %d binding %d: no keys", i, j)
			}
			if err := b.Force.validate(); err != nil {
				return fmt.Errorf("control %d binding %d: %w", i, j, err)
			}
		}
	}
	for i, h := range c.Script {
		if h.Key == "" || h.To < h.From {
			return fmt.Errorf("script %d: invalid hold %q [%f, %f)", i, h.Key, h.From, h.To)
		}
	}
	return nil
}

func (f ForceConfig) validate() error {
	switch f.Kind {
	case KindGravity, KindField, KindControl:
	case KindDrag:
		if f.Value < 0 {
			return fmt.Errorf("drag coefficient must not be negative, got %f", f.Value)
		}
	case KindBrake:
		if f.Value < 0 || f.Multiplier < 0 {
			return fmt.Errorf("brake value and multiplier must not be negative")
		}
	default:
		return fmt.Errorf("unknown force kind: %q", f.Kind)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	out.Forces = append([]ForceConfig(nil), c.Forces...)
	out.Script = append([]HoldConfig(nil), c.Script...)
	out.Controls = make([]RouterConfig, len(c.Controls))
	for i, r := range c.Controls {
		out.Controls[i] = RouterConfig{Body: r.Body, Bindings: make([]BindingConfig, len(r.Bindings))}
		for j, b := range r.Bindings {
			out.Controls[i].Bindings[j] = BindingConfig{
				Keys:  append([]string(nil), b.Keys...),
				Force: b.Force,
			}
		}
	}
	return &out
}
