// Package signal generates deterministic excitation signals for adaptive
// filter experiments.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-adaptive/dsp/filter/fir"
)

var (
	ErrInvalidLength     = errors.New("signal: sample count must be positive")
	ErrInvalidAmplitude  = errors.New("signal: amplitude must be non-negative")
	ErrInvalidSampleRate = errors.New("signal: sample rate must be positive")
	ErrEmptyPlant        = errors.New("signal: plant has no coefficients")
)

// Generator creates deterministic signals. All methods draw from one random
// stream, so consecutive calls produce independent sequences.
type Generator struct {
	seed int64
	rng  *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed. The default seed is 1.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 { return g.seed }

// Sine generates a sine wave starting at phase zero.
func (g *Generator) Sine(freqHz, sampleRate, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates uniform white noise in [-amplitude, amplitude).
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := checkNoise(amplitude, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = (g.rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// GaussianNoise generates zero-mean normal noise with standard deviation
// stddev.
func (g *Generator) GaussianNoise(stddev float64, samples int) ([]float64, error) {
	if err := checkNoise(stddev, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = g.rng.NormFloat64() * stddev
	}
	return out, nil
}

func checkNoise(amplitude float64, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if amplitude < 0 || math.IsNaN(amplitude) {
		return fmt.Errorf("%w: %f", ErrInvalidAmplitude, amplitude)
	}
	return nil
}

// Identification returns the signals of a system-identification run: unit
// uniform white input, and the response of the FIR plant to it plus
// Gaussian measurement noise of standard deviation noise.
func (g *Generator) Identification(plant []float64, samples int, noise float64) (desired, input []float64, err error) {
	if len(plant) == 0 {
		return nil, nil, ErrEmptyPlant
	}
	if input, err = g.WhiteNoise(1, samples); err != nil {
		return nil, nil, err
	}

	desired = make([]float64, samples)
	fir.New(plant).ProcessBlockTo(desired, input)
	if noise == 0 {
		return desired, input, nil
	}

	n, err := g.GaussianNoise(noise, samples)
	if err != nil {
		return nil, nil, err
	}
	for i := range desired {
		desired[i] += n[i]
	}
	return desired, input, nil
}
