// Package viz provides the live terminal view of a simulation.
//
// The view is a Bubble Tea program drawing the boundary and every entity on
// a braille [Canvas], with a stats panel beside it.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the spawned population
//	+/-   - Ticks per frame
//	[ ]   - Time travel through recent frames
//	T     - Cycle themes
//	?     - Help overlay
//	Q/Esc - Quit
package viz
