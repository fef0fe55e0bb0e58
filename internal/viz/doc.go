// Package viz is the terminal front end for the billiards table.
//
// It implements the presentation side of the simulator using Bubble Tea:
//
//   - [App]: preset menu that launches a table
//   - [Model]: live table driven by a frame tick, mouse and keys
//   - [Canvas]: Braille-based pixel canvas with per-cell colors
//
// The model holds only a [sim.Simulator] handle. Each frame it ticks the
// simulator once, reads a snapshot and draws it; mouse events are mapped
// from terminal cells into surface coordinates and forwarded as pointer
// events.
//
// # Controls
//
//	Drag a ball - steer it toward the pointer
//	Click ball  - open the palette, then 1-9/0 to recolor
//	Space       - Pause/Resume
//	N           - Single tick while paused
//	R           - Re-rack the table
//	T           - Cycle felt themes
//	Q           - Quit
package viz
