// Package worldline models charge trajectories and solves for the event on
// each trajectory seen by an observer: the intersection with the observer's
// past light cone (the retarded event).
//
// The set of trajectories is closed:
//
//   - [Static]: at rest forever
//   - [LineOscillate]: analytic sinusoidal motion along a line
//   - [CutOff]: hides the part of another world line before a given ct
//   - [Discrete]: samples appended by a numerical integrator
//
// All variants answer the same query:
//
//	r, ok := wl.PastIntersection(c, observer)
//
// ok is false when the trajectory does not reach far enough into the past
// (or the future) to intersect the light cone. That is a normal outcome and
// the caller simply leaves the source out.
package worldline
