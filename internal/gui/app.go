package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/experiment"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// Builder creates a fresh scene; F5 calls it again.
type Builder func() (*experiment.Scene, error)

type App struct {
	build   Builder
	Scene   *experiment.Scene
	Scale   int
	Running bool
	Debug   bool
	Err     error
}

func NewApp(build Builder, scale int) (*App, error) {
	if scale < 1 {
		scale = 1
	}
	a := &App{build: build, Scale: scale, Running: true, Debug: true}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) reset() error {
	scene, err := a.build()
	if err != nil {
		return err
	}
	a.Scene = scene
	a.Err = nil
	return nil
}

// Run opens a window sized to the scene's screen and blocks until it is
// closed.
func Run(build Builder, scale int) error {
	a, err := NewApp(build, scale)
	if err != nil {
		return err
	}
	scr := a.Scene.Screen
	rl.InitWindow(int32(scr.Width*a.Scale), int32(scr.Height*a.Scale), "forcebox :: "+a.Scene.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(scr.FPS))
	rl.SetExitKey(0)

	a.Scene.Controller.Resync()
	for !rl.WindowShouldClose() {
		if !a.Update() {
			break
		}
		a.Draw()
	}
	return a.Err
}

// Update handles host keys and steps the scene. It returns false when the
// user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		a.Debug = !a.Debug
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		a.Running = !a.Running
		if a.Running {
			a.Scene.Controller.Resync()
		}
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		if err := a.reset(); err != nil {
			a.Err = err
			return false
		}
	}

	if !a.Running || a.Err != nil {
		return true
	}
	if err := a.Scene.Controller.Step(HeldFunc(rl.IsKeyDown)); err != nil {
		a.Err = fmt.Errorf("step: %w", err)
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 4, 4, 10, ColTextDim)
	if !a.Running {
		rl.DrawText("PAUSED", 4, 16, 10, ColSelect)
	}
	if a.Err != nil {
		rl.DrawText(a.Err.Error(), 4, 28, 10, rl.Red)
	}
	if !a.Debug {
		return
	}
	y := int32(40)
	for _, line := range DebugLines(a.Scene) {
		rl.DrawText(line, 4, y, 10, ColText)
		y += 12
	}
}

// DebugLines lists the transient forces that acted in the last step, then
// every body.
func DebugLines(scene *experiment.Scene) []string {
	var lines []string
	for _, d := range scene.Controller.ActedTransientForces() {
		lines = append(lines, d.String())
	}
	for _, sh := range scene.Shapes {
		lines = append(lines, sh.Body.String())
	}
	return lines
}

// KeyFor maps a logical button name to a raylib key code.
func KeyFor(b dynamo.Button) (int32, bool) {
	switch b {
	case "lshift":
		return rl.KeyLeftShift, true
	case "rshift":
		return rl.KeyRightShift, true
	case "lctrl":
		return rl.KeyLeftControl, true
	case "rctrl":
		return rl.KeyRightControl, true
	case "space":
		return rl.KeySpace, true
	case "up":
		return rl.KeyUp, true
	case "down":
		return rl.KeyDown, true
	case "left":
		return rl.KeyLeft, true
	case "right":
		return rl.KeyRight, true
	}
	if len(b) != 1 {
		return 0, false
	}
	c := b[0]
	switch {
	case c >= 'a' && c <= 'z':
		return rl.KeyA + int32(c-'a'), true
	case c >= '0' && c <= '9':
		return rl.KeyZero + int32(c-'0'), true
	}
	return 0, false
}

// HeldFunc adapts a key state query such as rl.IsKeyDown.
func HeldFunc(isDown func(key int32) bool) dynamo.HeldFunc {
	return func(b dynamo.Button) bool {
		k, ok := KeyFor(b)
		return ok && isDown(k)
	}
}
