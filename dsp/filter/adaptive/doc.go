// Package adaptive provides online adaptive FIR filters.
//
// An adaptive filter keeps a weight vector w of N taps and, for every sample
// of an input signal x, compares the filtered input y = w·x with a desired
// sample d and nudges w to shrink the error e = d - y. After a run the
// filter holds the output sequence, the error sequence, and the adapted
// weights.
//
// # Algorithms
//
//   - [LMS]: least mean squares, w ← leak·w + μ·e·x.
//   - [LeakyLMS]: LMS with a leakage factor below one.
//   - [NLMS]: LMS with the step normalized by the window power.
//   - [SSLMS]: sign-sign LMS, updates by μ·sign(e)·sign(x) only.
//   - [GNGD]: generalized normalized gradient descent with an adaptive
//     regularization term.
//   - [RLS]: recursive least squares with a forgetting factor.
//   - [AP]: affine projection over the last P windows.
//
// # Usage
//
//	f, err := adaptive.NewNLMS(adaptive.Zeros(8), 0.5)
//	if err != nil { ... }
//	if err := f.Run(desired, input); err != nil { ... }
//	w, _ := f.Weights()
//	e, _ := f.ErrorSignal()
//
// # Input windows
//
// At time index i the filter sees a window of the N most recent input
// samples. A sample input[i-j] enters the window only when i-j > 0, so the
// first window is all zeros and input[0] never contributes. With the default
// [TapOrderWindow] the newest sample sits in the last slot, so weights[N-1]
// multiplies input[i]. [TapOrderFIR] reverses the slots so the weights read
// directly as FIR coefficients; [Filter.FIR] converts either layout.
//
// # Concurrency
//
// A [Filter] is not safe for concurrent use. Distinct filters share no
// mutable state and may run in parallel.
package adaptive
