package gui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rect is a screen-space rectangle in world units.
type Rect struct {
	X, Y, W, H float64
}

// WrappedRects places a box on a torus of size sw x sh. The box is returned
// at its wrapped position plus one copy for each edge it crosses.
func WrappedRects(x, y, w, h, sw, sh float64) []Rect {
	x, y = wrap(x, sw), wrap(y, sh)
	out := []Rect{{x, y, w, h}}
	overX, overY := x+w > sw, y+h > sh
	if overX {
		out = append(out, Rect{x - sw, y, w, h})
	}
	if overY {
		out = append(out, Rect{x, y - sh, w, h})
	}
	if overX && overY {
		out = append(out, Rect{x - sw, y - sh, w, h})
	}
	return out
}

func wrap(v, size float64) float64 {
	w := math.Mod(v, size)
	if w < 0 {
		w += size
	}
	return w
}

// ParseColor reads "#rrggbb" or "rrggbb".
func ParseColor(s string) (rl.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return ColAccent, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColAccent, fmt.Errorf("color %q: %w", s, err)
	}
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), 255), nil
}

func (a *App) drawScene() {
	scr := a.Scene.Screen
	sw, sh := float64(scr.Width), float64(scr.Height)
	s := float64(a.Scale)
	for _, shape := range a.Scene.Shapes {
		col, err := ParseColor(shape.Color)
		if err != nil {
			col = ColAccent
		}
		x, y := shape.Body.Position()
		for _, r := range WrappedRects(x, y, shape.Width, shape.Height, sw, sh) {
			rl.DrawRectangle(
				int32(math.Round(r.X*s)), int32(math.Round(r.Y*s)),
				int32(math.Round(r.W*s)), int32(math.Round(r.H*s)),
				col,
			)
		}
	}
}
