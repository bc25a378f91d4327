// Package rank implements the two-stage retrieve-then-classify ranking
// engine.
//
// A Rank call retrieves every identity stored in one view of the vector
// index as a score-sorted candidate list, invokes the external judge on
// a bounded top slice of it, and assembles a complete deterministic
// ranking: matched entries first, then score descending, with identity
// order breaking ties. Judge failures are folded into individual results
// rather than failing the call, so the output is always complete.
package rank
