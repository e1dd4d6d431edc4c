// Package viz renders a swarm in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one swarm, braille canvas plus stats panel
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per cell
//   - [CanvasPresenter]: the swarm.Presenter that draws onto a Canvas
//   - Preset menu with per-run tuning ([RunInteractive])
//
// The terminal must report mouse motion: moving the pointer over the canvas
// moves the attractor, exactly like moving it over a window.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Respawn the swarm from the configured seed
//	T     - Cycle color themes
//	S     - Save the canvas as SVG
//	?     - Show help overlay
package viz
