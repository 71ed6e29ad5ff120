// Package allocate places draw-offs on the annual timestep grid.
//
// Merge is the primary strategy: events sorted by placement key are merged
// against the cumulative probability curve in a single pass, which is
// inverse-CDF sampling without a per-event search. The merge is inherently
// sequential and must not be split across goroutines.
//
// Thin is the alternative strategy: every step independently accepts a draw
// from the tiled average profile with the probability given by a
// max-normalized curve.
package allocate
