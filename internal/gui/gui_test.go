package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/forcebox/internal/config"
	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/experiment"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		button dynamo.Button
		key    int32
		ok     bool
	}{
		{"w", rl.KeyW, true},
		{"a", rl.KeyA, true},
		{"l", rl.KeyL, true},
		{"7", rl.KeySeven, true},
		{"lshift", rl.KeyLeftShift, true},
		{"rshift", rl.KeyRightShift, true},
		{"up", rl.KeyUp, true},
		{"W", 0, false},
		{"hyper", 0, false},
	}
	for _, tt := range tests {
		key, ok := KeyFor(tt.button)
		if ok != tt.ok || key != tt.key {
			t.Errorf("KeyFor(%q) = %d, %v; want %d, %v", tt.button, key, ok, tt.key, tt.ok)
		}
	}
}

func TestHeldFunc(t *testing.T) {
	down := map[int32]bool{rl.KeyD: true, rl.KeyLeftShift: true}
	held := HeldFunc(func(k int32) bool { return down[k] })

	for _, b := range []dynamo.Button{"d", "lshift"} {
		if !held(b) {
			t.Errorf("%s should be held", b)
		}
	}
	for _, b := range []dynamo.Button{"a", "rshift", "nope"} {
		if held(b) {
			t.Errorf("%s should not be held", b)
		}
	}
}

func TestWrappedRects(t *testing.T) {
	inside := WrappedRects(10, 10, 6, 8, 240, 180)
	if len(inside) != 1 || inside[0] != (Rect{10, 10, 6, 8}) {
		t.Errorf("inside = %v", inside)
	}

	neg := WrappedRects(-2, 5, 6, 8, 240, 180)
	if len(neg) != 2 {
		t.Fatalf("expected 2 rects, got %v", neg)
	}
	if neg[0] != (Rect{238, 5, 6, 8}) || neg[1] != (Rect{-2, 5, 6, 8}) {
		t.Errorf("neg = %v", neg)
	}

	corner := WrappedRects(237, 178, 6, 8, 240, 180)
	if len(corner) != 4 {
		t.Fatalf("expected 4 rects, got %v", corner)
	}
	if corner[3] != (Rect{-3, -2, 6, 8}) {
		t.Errorf("corner copy = %v", corner[3])
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ffa300")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 0xff || c.G != 0xa3 || c.B != 0x00 || c.A != 255 {
		t.Errorf("got %v", c)
	}

	if _, err := ParseColor("#fff"); err == nil {
		t.Error("expected error for short color")
	}
	if _, err := ParseColor("zzzzzz"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestDebugLines(t *testing.T) {
	scene, err := experiment.Build(config.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	held := HeldFunc(func(k int32) bool { return k == rl.KeyD })
	if err := scene.Controller.StepDt(0.1, held); err != nil {
		t.Fatal(err)
	}

	lines := DebugLines(scene)
	if len(lines) != 2 {
		t.Fatalf("expected force line and body line, got %q", lines)
	}
	if lines[0] != "control_force: x: 70.0, y: 0.0" {
		t.Errorf("force line = %q", lines[0])
	}
}
