// Package convergence measures how well an adaptive filter has learned.
//
// The measurements work on the sequences an adaptive filter produces: the
// desired signal d, the error signal e = d - y, and the learned weights.
//
//   - [Analyze] summarizes a whole run: mean squared error, the MSE of the
//     final quarter of the run (steady state), error mean and variance, and
//     the echo return loss enhancement ERLE = 10·log10(Σd² / Σe²).
//   - [LearningCurve] averages e² over consecutive blocks.
//   - [Misalignment] compares learned weights with a known reference
//     system: ‖w - h‖² / ‖h‖².
//   - [Accumulator] builds a [Report] incrementally over blocks of samples.
//
// All decibel values are power ratios (10·log10) and are -Inf for a zero
// ratio.
package convergence
