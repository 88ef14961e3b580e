// Package viz provides terminal-based visualization for steering runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view stepping a scenario run one tick per frame
//   - [Canvas]: Braille-based pixel canvas with a world [Viewport]
//   - [Printer]: observer redrawing a plain terminal during a batch run
//   - [PlotSeries]: asciigraph charts of recorded series
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Restart the scenario
//	L     - Toggle trails
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[]    - Time travel (rewind/forward)
//
// 3D runs are drawn through an orbiting [Camera] (x/y to orbit, +/- to zoom).
package viz
