package fir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrFFTSize is returned by [Filter.FrequencyResponse] for a transform size
// that is not a power of two or is shorter than the filter.
var ErrFFTSize = errors.New("fir: fft size must be a power of two >= filter length")

// Filter implements a direct-form FIR filter using a circular-buffer delay line.
type Filter struct {
	coeffs []float64
	delay  []float64
	pos    int
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
func New(coeffs []float64) *Filter {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Filter{
		coeffs: c,
		delay:  make([]float64, len(coeffs)),
	}
}

// ProcessSample filters one input sample.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}
	f.delay[f.pos] = x
	var y float64
	p := f.pos
	for k := range n {
		y += f.coeffs[k] * f.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}
	f.pos++
	if f.pos >= n {
		f.pos = 0
	}
	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response H(e^{jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// FrequencyResponse returns the nfft-point DFT of the zero-padded
// coefficients, i.e. H sampled at w_k = 2πk/nfft for k in [0, nfft).
func (f *Filter) FrequencyResponse(nfft int) ([]complex128, error) {
	return FrequencyResponse(f.coeffs, nfft)
}

// FrequencyResponse returns the nfft-point DFT of the zero-padded
// coefficient slice coeffs. nfft must be a power of two and at least
// len(coeffs).
func FrequencyResponse(coeffs []float64, nfft int) ([]complex128, error) {
	if nfft < len(coeffs) || nfft <= 0 || nfft&(nfft-1) != 0 {
		return nil, fmt.Errorf("%w: %d (filter length %d)", ErrFFTSize, nfft, len(coeffs))
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, fmt.Errorf("fir: fft plan: %w", err)
	}

	in := make([]complex128, nfft)
	for k, c := range coeffs {
		in[k] = complex(c, 0)
	}

	out := make([]complex128, nfft)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fir: fft: %w", err)
	}
	return out, nil
}
