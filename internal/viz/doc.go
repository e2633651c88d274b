// Package viz draws a running scene in the terminal.
//
// A [Canvas] is a grid of braille cells. [Capture] turns the simulator's
// current frame into a [Picture]: the charges at their retarded positions
// and an arrow along E at every probe, all in the observer's rest frame.
// [LiveModel] is a Bubble Tea model that steps the simulator once per tick
// and draws the picture either from above ([DrawSlice]) or through an
// orbiting [Camera] ([DrawPerspective]).
//
// # Key Bindings
//
//	Space   - Pause/Resume
//	R       - Restart the preset
//	N       - Next preset
//	[ ]     - Lower/raise the speed of light
//	WASDEX  - Thrust the observer
//	M       - Toggle the 3D view
//	T       - Cycle color themes
//	?       - Show help overlay
package viz
