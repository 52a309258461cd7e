package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight give the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set lights the sub-pixel at (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.PixelWidth() || y >= c.PixelHeight() {
		return
	}
	c.Grid[y/4][x/2] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.PixelWidth() || y >= c.PixelHeight() {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps a wrapped world screen onto canvas sub-pixels, keeping the
// aspect ratio.
type Viewport struct {
	ScreenW, ScreenH float64
	Scale            float64
	// pixel extent of the screen on the canvas
	PW, PH int
}

func NewViewport(c *Canvas, screenW, screenH int) Viewport {
	sx := float64(c.PixelWidth()) / float64(screenW)
	sy := float64(c.PixelHeight()) / float64(screenH)
	v := Viewport{ScreenW: float64(screenW), ScreenH: float64(screenH), Scale: math.Min(sx, sy)}
	v.PW = int(v.ScreenW * v.Scale)
	v.PH = int(v.ScreenH * v.Scale)
	return v
}

// Project wraps a world position onto the screen and scales it.
func (v Viewport) Project(x, y float64) (int, int) {
	return int(wrap(x, v.ScreenW) * v.Scale), int(wrap(y, v.ScreenH) * v.Scale)
}

// Size scales a world length, never below one sub-pixel.
func (v Viewport) Size(l float64) int {
	n := int(math.Round(l * v.Scale))
	if n < 1 {
		return 1
	}
	return n
}

// FillBox draws a world-space box whose top-left corner is (x, y). Parts
// past an edge of the screen reappear on the opposite edge.
func (v Viewport) FillBox(c *Canvas, x, y, w, h float64) {
	px, py := v.Project(x, y)
	pw, ph := v.Size(w), v.Size(h)
	for dy := 0; dy < ph; dy++ {
		for dx := 0; dx < pw; dx++ {
			c.Set(wrapInt(px+dx, v.PW), wrapInt(py+dy, v.PH))
		}
	}
}

// Border outlines the screen area.
func (v Viewport) Border(c *Canvas) {
	r, b := v.PW-1, v.PH-1
	c.DrawLine(0, 0, r, 0)
	c.DrawLine(r, 0, r, b)
	c.DrawLine(r, b, 0, b)
	c.DrawLine(0, b, 0, 0)
}

func wrap(v, size float64) float64 {
	w := math.Mod(v, size)
	if w < 0 {
		w += size
	}
	return w
}

func wrapInt(v, size int) int {
	w := v % size
	if w < 0 {
		w += size
	}
	return w
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
