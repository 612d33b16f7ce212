package adaptive

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/cwbudde/algo-adaptive/dsp/filter/fir"
)

// Algorithm identifies an adaptive update rule.
type Algorithm int

const (
	LMS Algorithm = iota
	LeakyLMS
	NLMS
	SSLMS
	GNGD
	RLS
	AP
)

func (a Algorithm) String() string {
	switch a {
	case LMS:
		return "LMS"
	case LeakyLMS:
		return "LeakyLMS"
	case NLMS:
		return "NLMS"
	case SSLMS:
		return "SSLMS"
	case GNGD:
		return "GNGD"
	case RLS:
		return "RLS"
	case AP:
		return "AP"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{LMS, LeakyLMS, NLMS, SSLMS, GNGD, RLS, AP}
}

// updateRule is one time step of an adaptive algorithm. step reads the
// window x and desired sample d, updates w in place, and returns the
// output and error of the step.
type updateRule interface {
	step(w, x []float64, d float64) (y, e float64)
	// beginRun clears per-run counters.
	beginRun()
	// reset restores the construction-time recursive state.
	reset()
	report(*Diagnostics)
}

// statelessRule is embedded by rules whose only state is the weights.
type statelessRule struct{}

func (statelessRule) beginRun()           {}
func (statelessRule) reset()              {}
func (statelessRule) report(*Diagnostics) {}

// Diagnostics describes the most recent run.
type Diagnostics struct {
	// Steps is the number of update steps, equal to the signal length.
	Steps int
	// SingularFallbacks counts AP steps whose projection matrix was
	// numerically singular and was solved through the pseudo-inverse.
	SingularFallbacks int
	// SkippedUpdates counts AP steps where neither solve succeeded and the
	// weights were left unchanged.
	SkippedUpdates int
	// Epsilon is the current GNGD regularization term, or the configured ε
	// for other algorithms.
	Epsilon float64
}

// Filter is an adaptive FIR filter. Create one with [New] or one of the
// algorithm constructors, then call [Filter.Run].
type Filter struct {
	algo    Algorithm
	cfg     config
	rule    updateRule
	weights []float64
	initial []float64
	window  []float64

	output []float64
	errs   []float64
	diag   Diagnostics
	logger logging.LeveledLogger
}

// New creates a filter for algo with the algorithm's default
// hyperparameters, overridden by opts.
func New(algo Algorithm, init Init, opts ...Option) (*Filter, error) {
	cfg := defaultConfig(algo)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}

	w, err := init.build(cfg.rng)
	if err != nil {
		return nil, err
	}
	n := len(w)

	var rule updateRule
	switch algo {
	case LMS, LeakyLMS:
		rule = newLMSRule(n, cfg.mu, cfg.leak)
	case NLMS:
		rule = newNLMSRule(n, cfg.mu, cfg.leak)
	case SSLMS:
		rule = newSSLMSRule(n, cfg.mu, cfg.leak)
	case GNGD:
		rule = newGNGDRule(n, cfg.mu, cfg.eps, cfg.rho)
	case RLS:
		rule = newRLSRule(n, cfg.mu, cfg.eps)
	case AP:
		rule = newAPRule(n, cfg.mu, cfg.eps, cfg.order)
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidArgument, int(algo))
	}

	warnHyperparameters(algo, cfg)

	initial := make([]float64, n)
	copy(initial, w)
	return &Filter{
		algo:    algo,
		cfg:     cfg,
		rule:    rule,
		weights: w,
		initial: initial,
		window:  make([]float64, n),
		logger:  cfg.logger,
	}, nil
}

// Run adapts the filter over the whole signal, one sample at a time in
// order, and stores the output and error sequences. desired and input must
// be non-empty, of equal length, and at least as long as the filter. On a
// precondition failure Run returns an error wrapping [ErrInvalidArgument]
// and leaves the filter untouched.
//
// Each call continues from the weights and state left by the previous
// call; the output and error sequences are replaced.
func (f *Filter) Run(desired, input []float64) error {
	if err := f.validate(desired, input); err != nil {
		return err
	}

	output := make([]float64, len(input))
	errs := make([]float64, len(input))

	f.rule.beginRun()
	for i := range input {
		assembleWindow(f.window, input, i, f.cfg.tapOrder)
		output[i], errs[i] = f.rule.step(f.weights, f.window, desired[i])
	}

	f.output, f.errs = output, errs
	f.diag = Diagnostics{Steps: len(input), Epsilon: f.cfg.eps}
	f.rule.report(&f.diag)
	if f.diag.SingularFallbacks > 0 {
		f.logger.Debugf("%v: %d of %d steps used the pseudo-inverse fallback",
			f.algo, f.diag.SingularFallbacks, f.diag.Steps)
	}
	return nil
}

func (f *Filter) validate(desired, input []float64) error {
	switch {
	case len(desired) == 0:
		return fmt.Errorf("%w: desired signal must be non-nil and non-empty", ErrInvalidArgument)
	case len(input) == 0:
		return fmt.Errorf("%w: input signal must be non-nil and non-empty", ErrInvalidArgument)
	case len(desired) != len(input):
		return fmt.Errorf("%w: desired and input lengths differ: %d != %d",
			ErrInvalidArgument, len(desired), len(input))
	case len(f.weights) > len(input):
		return fmt.Errorf("%w: filter length %d exceeds signal length %d",
			ErrInvalidArgument, len(f.weights), len(input))
	}
	return nil
}

// Algorithm returns the filter's update rule.
func (f *Filter) Algorithm() Algorithm { return f.algo }

// Len returns the number of taps N.
func (f *Filter) Len() int { return len(f.weights) }

// TapOrder returns the window layout the weights are expressed in.
func (f *Filter) TapOrder() TapOrder { return f.cfg.tapOrder }

func (f *Filter) checkRun() error {
	if f.output == nil {
		return ErrUninitialized
	}
	return nil
}

// Weights returns a copy of the adapted weights.
func (f *Filter) Weights() ([]float64, error) {
	if err := f.checkRun(); err != nil {
		return nil, err
	}
	return clone(f.weights), nil
}

// Output returns a copy of the filtered output of the last run.
func (f *Filter) Output() ([]float64, error) {
	if err := f.checkRun(); err != nil {
		return nil, err
	}
	return clone(f.output), nil
}

// ErrorSignal returns a copy of the error sequence d - y of the last run.
func (f *Filter) ErrorSignal() ([]float64, error) {
	if err := f.checkRun(); err != nil {
		return nil, err
	}
	return clone(f.errs), nil
}

// Diagnostics returns counters of the last run.
func (f *Filter) Diagnostics() (Diagnostics, error) {
	if err := f.checkRun(); err != nil {
		return Diagnostics{}, err
	}
	return f.diag, nil
}

// Reset restores the initial weights and recursive state and discards the
// results of previous runs.
func (f *Filter) Reset() {
	copy(f.weights, f.initial)
	f.rule.reset()
	f.output, f.errs = nil, nil
	f.diag = Diagnostics{}
}

// Coefficients returns the adapted weights in FIR coefficient order, so
// that coefficient k multiplies input[i-k].
func (f *Filter) Coefficients() ([]float64, error) {
	if err := f.checkRun(); err != nil {
		return nil, err
	}
	c := clone(f.weights)
	if f.cfg.tapOrder == TapOrderWindow {
		for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
			c[i], c[j] = c[j], c[i]
		}
	}
	return c, nil
}

// FIR freezes the adapted weights into a fixed FIR filter.
func (f *Filter) FIR() (*fir.Filter, error) {
	c, err := f.Coefficients()
	if err != nil {
		return nil, err
	}
	return fir.New(c), nil
}

// FrequencyResponse returns the nfft-point frequency response of the
// adapted weights. nfft must be a power of two >= [Filter.Len].
func (f *Filter) FrequencyResponse(nfft int) ([]complex128, error) {
	c, err := f.Coefficients()
	if err != nil {
		return nil, err
	}
	h, err := fir.FrequencyResponse(c, nfft)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return h, nil
}

func clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
