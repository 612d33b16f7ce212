package convergence

import vecmath "github.com/cwbudde/algo-vecmath"

// Accumulator builds a [Report] incrementally across blocks of samples.
// The steady-state MSE covers the most recent samples, up to the window
// length given to [NewAccumulator].
type Accumulator struct {
	n       int
	mean    float64
	m2      float64
	ed, ee  float64
	tail    []float64
	tailPos int
	tailLen int
}

// NewAccumulator creates an accumulator whose steady-state window holds
// the last window samples. window must be positive.
func NewAccumulator(window int) (*Accumulator, error) {
	if window <= 0 {
		return nil, ErrInvalidBlock
	}
	return &Accumulator{tail: make([]float64, window)}, nil
}

// Update adds a block of desired and error samples.
func (a *Accumulator) Update(desired, errorSignal []float64) error {
	if len(desired) != len(errorSignal) {
		return ErrLengthMismatch
	}

	a.ed += vecmath.DotProduct(desired, desired)
	a.ee += vecmath.DotProduct(errorSignal, errorSignal)

	for _, e := range errorSignal {
		a.n++
		delta := e - a.mean
		a.mean += delta / float64(a.n)
		a.m2 += delta * (e - a.mean)

		a.tail[a.tailPos] = e
		a.tailPos = (a.tailPos + 1) % len(a.tail)
		a.tailLen = min(a.tailLen+1, len(a.tail))
	}
	return nil
}

// Samples returns the number of samples seen so far.
func (a *Accumulator) Samples() int { return a.n }

// Result returns the report for all samples seen so far.
func (a *Accumulator) Result() (Report, error) {
	if a.n == 0 {
		return Report{}, ErrEmptySignal
	}
	// Unfilled slots are zero and add nothing to the energy.
	tailEnergy := vecmath.DotProduct(a.tail, a.tail)
	return newReport(a.n, a.ed, a.ee, tailEnergy, a.tailLen, a.mean, a.m2/float64(a.n)), nil
}

// Reset clears all accumulated data, keeping the window length.
func (a *Accumulator) Reset() {
	clear(a.tail)
	*a = Accumulator{tail: a.tail}
}
