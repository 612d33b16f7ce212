// Package fir provides a direct-form FIR filter runtime.
//
// A [Filter] applies a fixed set of coefficients to an input stream using a
// circular-buffer delay line. In this module it plays two roles: it models
// the unknown plant in system-identification scenarios, and it runs the
// weights learned by an adaptive filter once adaptation is frozen (see
// adaptive.Filter.FIR).
//
// Coefficients are in convolution order: coeffs[k] multiplies x[n-k].
package fir
