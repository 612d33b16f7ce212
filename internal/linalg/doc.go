// Package linalg is the dense small-matrix kernel behind the matrix-based
// adaptive filters (RLS and affine projection).
//
// Matrices are gonum [mat.Dense] values sized once by the caller and reused
// for every time step. The package adds what the filters need on top of
// gonum:
//
//   - [Identity], [ScaledIdentity] and [Outer] constructors.
//   - [PushColumn], a fixed-width FIFO shift of matrix columns.
//   - A [Solver] whose primary path is an LU solve that reports
//     [ErrSingular] for numerically singular systems, and whose fallback is a
//     minimum-norm least-squares solve through an SVD pseudo-inverse.
//
// Callers choose the fallback explicitly: [Solver.Solve] never retries on
// its own, [Solver.SolveRobust] retries only on [ErrSingular].
package linalg
