// Package dynamo holds the primitives shared by every layer of the
// electrodynamics engine: sentinel errors and the chunked parallel loop used
// for read-only field sampling.
//
// # Errors
//
// Failures are reported with the sentinel values in this package, usually
// wrapped with context:
//
//	if errors.Is(err, dynamo.ErrSuperluminal) {
//	    // reject the configuration
//	}
//
// A causal miss (a source that has no event on an observer's past light cone)
// is never an error; solvers return ok == false instead.
//
// # Thread Safety
//
// Charge sets are NOT safe for concurrent mutation. [ParallelFor] is only
// used for reads between ticks, when no world line is being appended to.
package dynamo
