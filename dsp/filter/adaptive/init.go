package adaptive

import (
	"fmt"
	"math/rand"
)

// FillMethod selects how generated initial weights are filled.
type FillMethod int

const (
	// FillZeros starts every tap at 0.
	FillZeros FillMethod = iota
	// FillRandom draws every tap uniformly from [0, 1).
	FillRandom
)

func (m FillMethod) String() string {
	switch m {
	case FillZeros:
		return "zeros"
	case FillRandom:
		return "random"
	default:
		return fmt.Sprintf("FillMethod(%d)", int(m))
	}
}

// Init describes the initial weight vector: either explicit values or a
// length plus a fill method. Build one with [Zeros], [Random], [Fill] or
// [Weights]. The zero value is invalid.
type Init struct {
	length   int
	fill     FillMethod
	weights  []float64
	explicit bool
}

// Zeros returns an Init for n zero taps.
func Zeros(n int) Init { return Fill(n, FillZeros) }

// Random returns an Init for n taps drawn uniformly from [0, 1).
func Random(n int) Init { return Fill(n, FillRandom) }

// Fill returns an Init for n taps filled by method.
func Fill(n int, method FillMethod) Init {
	return Init{length: n, fill: method}
}

// Weights returns an Init that starts from a copy of w.
func Weights(w []float64) Init {
	return Init{length: len(w), weights: w, explicit: true}
}

// Len returns the filter length the Init describes.
func (in Init) Len() int { return in.length }

func (in Init) build(rng *rand.Rand) ([]float64, error) {
	if in.explicit {
		if len(in.weights) == 0 {
			return nil, fmt.Errorf("%w: weights must be non-nil and non-empty", ErrInvalidArgument)
		}
		w := make([]float64, len(in.weights))
		copy(w, in.weights)
		return w, nil
	}

	if in.length <= 0 {
		return nil, fmt.Errorf("%w: filter length must be > 0: %d", ErrInvalidArgument, in.length)
	}

	w := make([]float64, in.length)
	switch in.fill {
	case FillZeros:
	case FillRandom:
		draw := rand.Float64
		if rng != nil {
			draw = rng.Float64
		}
		for i := range w {
			w[i] = draw()
		}
	default:
		return nil, fmt.Errorf("%w: unknown weights fill method %d", ErrInvalidArgument, int(in.fill))
	}
	return w, nil
}
