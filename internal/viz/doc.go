// Package viz is the terminal host for forcebox scenes.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps a scene from keyboard input and draws it
//   - [Menu]: scene picker that launches a [Model]
//   - [Canvas]: Braille-based pixel canvas, with [Viewport] wrapping the
//     world screen onto it
//
// # Input
//
// Terminals deliver key presses but never key releases, so a press holds
// its button for a short window and repeats extend it. Capital letters also
// hold a shift button; see [ButtonsForKey].
//
// # Key Bindings
//
//	Space  - Pause/Resume simulation
//	Ctrl+R - Rebuild the scene
//	Tab    - Cycle tunable force parameters
//	+/-    - Tune the selected parameter
//	Ctrl+D - Toggle the debug overlay
//	?      - Show help overlay
package viz
