package adaptive

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pion/logging"
)

// Default hyperparameters per algorithm.
const (
	DefaultLMSLearningRate   = 0.01
	DefaultLeakage           = 0.999
	DefaultNLMSLearningRate  = 0.5
	DefaultGNGDLearningRate  = 1.0
	DefaultGNGDEpsilon       = 1.0
	DefaultGNGDRho           = 0.1
	DefaultRLSForgetting     = 0.99
	DefaultRLSEpsilon        = 0.1
	DefaultAPLearningRate    = 0.1
	DefaultAPEpsilon         = 0.001
	DefaultAPProjectionOrder = 5
)

// TapOrder selects how input samples are laid out in the window and
// therefore how the weights line up with time.
type TapOrder int

const (
	// TapOrderWindow places input[i-j] in slot N-1-j: the newest sample is
	// last.
	TapOrderWindow TapOrder = iota
	// TapOrderFIR places input[i-j] in slot j: weights[k] multiplies
	// input[i-k], the usual FIR coefficient order.
	TapOrderFIR
)

func (o TapOrder) String() string {
	switch o {
	case TapOrderWindow:
		return "window"
	case TapOrderFIR:
		return "fir"
	default:
		return fmt.Sprintf("TapOrder(%d)", int(o))
	}
}

// Option mutates filter construction parameters.
type Option func(*config) error

type config struct {
	mu       float64 // learning rate; forgetting factor for RLS
	leak     float64
	eps      float64
	rho      float64
	order    int
	tapOrder TapOrder
	rng      *rand.Rand
	logger   logging.LeveledLogger
}

func defaultConfig(algo Algorithm) config {
	cfg := config{
		mu:    DefaultLMSLearningRate,
		leak:  1,
		order: DefaultAPProjectionOrder,
	}
	switch algo {
	case LeakyLMS:
		cfg.leak = DefaultLeakage
	case NLMS:
		cfg.mu = DefaultNLMSLearningRate
	case GNGD:
		cfg.mu = DefaultGNGDLearningRate
		cfg.eps = DefaultGNGDEpsilon
		cfg.rho = DefaultGNGDRho
	case RLS:
		cfg.mu = DefaultRLSForgetting
		cfg.eps = DefaultRLSEpsilon
	case AP:
		cfg.mu = DefaultAPLearningRate
		cfg.eps = DefaultAPEpsilon
	}
	return cfg
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite: %v", ErrInvalidArgument, name, v)
	}
	return nil
}

// WithLearningRate sets the step size μ. For RLS it sets the forgetting
// factor. Out-of-range values are accepted; see [Filter] construction
// warnings.
func WithLearningRate(mu float64) Option {
	return func(cfg *config) error {
		if err := finite("learning rate", mu); err != nil {
			return err
		}
		cfg.mu = mu
		return nil
	}
}

// WithForgettingFactor is an alias of [WithLearningRate] that reads better
// for RLS.
func WithForgettingFactor(lambda float64) Option {
	return WithLearningRate(lambda)
}

// WithLeakage sets the multiplicative weight decay of the LMS family.
// A value of 1 disables leakage.
func WithLeakage(leak float64) Option {
	return func(cfg *config) error {
		if err := finite("leakage factor", leak); err != nil {
			return err
		}
		cfg.leak = leak
		return nil
	}
}

// WithEpsilon sets the regularization ε: the initial compensation term for
// GNGD, the initial inverse-correlation scale 1/ε for RLS, and the diagonal
// loading for AP.
func WithEpsilon(eps float64) Option {
	return func(cfg *config) error {
		if err := finite("epsilon", eps); err != nil {
			return err
		}
		cfg.eps = eps
		return nil
	}
}

// WithRho sets the GNGD adaptation rate ρ of the regularization term.
func WithRho(rho float64) Option {
	return func(cfg *config) error {
		if err := finite("rho", rho); err != nil {
			return err
		}
		cfg.rho = rho
		return nil
	}
}

// WithOrder sets the AP projection order P. Must be >= 1.
func WithOrder(order int) Option {
	return func(cfg *config) error {
		if order < 1 {
			return fmt.Errorf("%w: projection order must be >= 1: %d", ErrInvalidArgument, order)
		}
		cfg.order = order
		return nil
	}
}

// WithTapOrder selects the window layout. See [TapOrder].
func WithTapOrder(order TapOrder) Option {
	return func(cfg *config) error {
		if order != TapOrderWindow && order != TapOrderFIR {
			return fmt.Errorf("%w: unknown tap order %d", ErrInvalidArgument, int(order))
		}
		cfg.tapOrder = order
		return nil
	}
}

// WithRand sets the random source used by [FillRandom]. Without it the
// global math/rand source is used and callers who need determinism must
// seed it themselves.
func WithRand(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}

// WithLogger sets the logger for advisory diagnostics. nil selects the
// package default, which writes warnings to stderr.
func WithLogger(logger logging.LeveledLogger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}

var loggerFactory = func() *logging.DefaultLoggerFactory {
	f := logging.NewDefaultLoggerFactory()
	f.DefaultLogLevel = logging.LogLevelWarn
	return f
}()

func defaultLogger() logging.LeveledLogger {
	return loggerFactory.NewLogger("adaptive")
}

// warnHyperparameters logs ranges known to diverge or misbehave. It never
// rejects a configuration.
func warnHyperparameters(algo Algorithm, cfg config) {
	log := cfg.logger
	switch algo {
	case LMS, LeakyLMS, SSLMS:
		if cfg.leak <= 0 || cfg.leak > 1 {
			log.Warnf("%v leakage factor %g outside (0, 1]", algo, cfg.leak)
		}
		if cfg.mu < 0 {
			log.Warnf("%v learning rate %g is negative; the filter will diverge", algo, cfg.mu)
		}
	case NLMS:
		if cfg.mu < 0 || cfg.mu > 2 {
			log.Warnf("NLMS learning rate %g outside [0, 2]; keep it in range to avoid diverging results", cfg.mu)
		}
		if cfg.leak <= 0 || cfg.leak > 1 {
			log.Warnf("NLMS leakage factor %g outside (0, 1]", cfg.leak)
		}
	case GNGD:
		if cfg.mu < 0 || cfg.mu > 2 {
			log.Warnf("GNGD learning rate %g outside [0, 2]", cfg.mu)
		}
	case RLS:
		if cfg.mu <= 0 || cfg.mu > 1 {
			log.Warnf("RLS forgetting factor %g outside (0, 1]", cfg.mu)
		}
		if cfg.eps <= 0 {
			log.Warnf("RLS epsilon %g must be positive for a finite initial inverse correlation", cfg.eps)
		}
	case AP:
		if cfg.mu <= 0 || cfg.mu >= 2 {
			log.Warnf("AP learning rate %g outside (0, 2)", cfg.mu)
		}
		if cfg.eps < 0 {
			log.Warnf("AP epsilon %g is negative", cfg.eps)
		}
	}
}

// withPositional appends the constructor's positional hyperparameters after
// the caller's options so that they take precedence, without writing into
// the caller's slice.
func withPositional(opts []Option, positional ...Option) []Option {
	out := make([]Option, 0, len(opts)+len(positional))
	out = append(out, opts...)
	return append(out, positional...)
}
