// Package viz is the terminal front-end for the particle toy.
//
// It renders a [sim.Runner] with Bubble Tea:
//
//   - [Model]: live view. Advances one frame per tick, draws the arena
//     outline and every body on a braille [Canvas], and shows a stats panel
//     with the object count, frame time and charts.
//   - [Menu]: preset picker that starts a live view.
//
// # Input
//
//	Space       - Pause/Resume
//	G           - Toggle centre-seeking gravity
//	T           - Cycle colour themes
//	?           - Help overlay
//	Q / Ctrl+C  - Quit
//	Left mouse  - Hold to spawn a body at the pointer every frame; drag to move it
package viz
