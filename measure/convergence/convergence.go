package convergence

import (
	"errors"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

var (
	ErrEmptySignal    = errors.New("convergence: signal is empty")
	ErrLengthMismatch = errors.New("convergence: signal lengths differ")
	ErrInvalidBlock   = errors.New("convergence: block size must be positive")
	ErrZeroReference  = errors.New("convergence: reference weights are all zero")
)

// SteadyStateFraction is the trailing share of a run that [Analyze] treats
// as steady state.
const SteadyStateFraction = 0.25

// Report summarizes the error signal of an adaptive filter run.
//
//nolint:revive
type Report struct {
	Samples           int
	MSE               float64 // mean of e²
	MSE_dB            float64
	SteadyStateMSE    float64 // mean of e² over the trailing steady-state window
	SteadyStateMSE_dB float64
	SteadyState       int // samples in the steady-state window
	ErrorMean         float64
	ErrorVariance     float64
	DesiredPower      float64 // mean of d²
	ERLE_dB           float64
}

// powTodB converts a power ratio to decibels: 10 * log10(value).
// Returns -Inf for zero values.
func powTodB(value float64) float64 {
	if value == 0 {
		return math.Inf(-1)
	}

	return 10 * mathLog10(value)
}

// erle returns 10·log10(ed/ee). A run without error energy has infinite
// enhancement unless the desired signal is silent too, which is 0 dB.
func erle(ed, ee float64) float64 {
	switch {
	case ee == 0 && ed == 0:
		return 0
	case ee == 0:
		return math.Inf(1)
	default:
		return powTodB(ed / ee)
	}
}

// steadyStateLen returns the number of trailing samples [Analyze] averages
// for the steady-state MSE.
func steadyStateLen(n int) int {
	return max(1, int(math.Ceil(float64(n)*SteadyStateFraction)))
}

// Analyze computes a [Report] for a run with the given desired and error
// signals.
func Analyze(desired, errorSignal []float64) (Report, error) {
	if len(errorSignal) == 0 {
		return Report{}, ErrEmptySignal
	}
	if len(desired) != len(errorSignal) {
		return Report{}, ErrLengthMismatch
	}

	n := len(errorSignal)
	tail := errorSignal[n-steadyStateLen(n):]
	mean, variance := moments(errorSignal)

	return newReport(
		n,
		vecmath.DotProduct(desired, desired),
		vecmath.DotProduct(errorSignal, errorSignal),
		vecmath.DotProduct(tail, tail),
		len(tail),
		mean,
		variance,
	), nil
}

func newReport(n int, ed, ee, tailEnergy float64, tail int, mean, variance float64) Report {
	nf := float64(n)
	mse := ee / nf
	ss := tailEnergy / float64(tail)
	return Report{
		Samples:           n,
		MSE:               mse,
		MSE_dB:            powTodB(mse),
		SteadyStateMSE:    ss,
		SteadyStateMSE_dB: powTodB(ss),
		SteadyState:       tail,
		ErrorMean:         mean,
		ErrorVariance:     variance,
		DesiredPower:      ed / nf,
		ERLE_dB:           erle(ed, ee),
	}
}

// moments returns the mean and population variance using Welford's update.
func moments(x []float64) (mean, variance float64) {
	var m2 float64
	for i, v := range x {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}
	return mean, m2 / float64(len(x))
}

// LearningCurve returns the mean squared error of consecutive blocks of
// the error signal. A trailing partial block is averaged over its own
// length.
func LearningCurve(errorSignal []float64, block int) ([]float64, error) {
	if block <= 0 {
		return nil, ErrInvalidBlock
	}
	if len(errorSignal) == 0 {
		return nil, ErrEmptySignal
	}

	curve := make([]float64, 0, (len(errorSignal)+block-1)/block)
	for start := 0; start < len(errorSignal); start += block {
		seg := errorSignal[start:min(start+block, len(errorSignal))]
		curve = append(curve, vecmath.DotProduct(seg, seg)/float64(len(seg)))
	}
	return curve, nil
}

// Misalignment returns the normalized weight error ‖w - ref‖² / ‖ref‖².
// Both vectors must be in the same tap order.
func Misalignment(w, ref []float64) (float64, error) {
	if len(ref) == 0 {
		return 0, ErrEmptySignal
	}
	if len(w) != len(ref) {
		return 0, ErrLengthMismatch
	}

	refEnergy := vecmath.DotProduct(ref, ref)
	if refEnergy == 0 {
		return 0, ErrZeroReference
	}

	diff := make([]float64, len(w))
	vecmath.ScaleBlock(diff, ref, -1)
	vecmath.AddBlockInPlace(diff, w)
	return vecmath.DotProduct(diff, diff) / refEnergy, nil
}

// MisalignmentDB returns [Misalignment] in decibels.
func MisalignmentDB(w, ref []float64) (float64, error) {
	m, err := Misalignment(w, ref)
	if err != nil {
		return 0, err
	}
	return powTodB(m), nil
}
