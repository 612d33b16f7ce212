package adaptive

import vecmath "github.com/cwbudde/algo-vecmath"

// nlmsRegularization keeps the NLMS step finite on an all-zero window.
const nlmsRegularization = 2.2204460492503131e-16

// NewLMS creates a least-mean-squares filter with step size mu. Leakage
// defaults to 1 (plain LMS) and can be set with [WithLeakage].
func NewLMS(init Init, mu float64, opts ...Option) (*Filter, error) {
	return New(LMS, init, withPositional(opts, WithLearningRate(mu))...)
}

// NewLeakyLMS creates an LMS filter whose weights decay by leak every step.
func NewLeakyLMS(init Init, mu, leak float64, opts ...Option) (*Filter, error) {
	return New(LeakyLMS, init, withPositional(opts, WithLearningRate(mu), WithLeakage(leak))...)
}

// NewNLMS creates a normalized LMS filter. The step is mu divided by the
// window power. mu should stay in [0, 2]; other values are accepted with a
// warning.
func NewNLMS(init Init, mu float64, opts ...Option) (*Filter, error) {
	return New(NLMS, init, withPositional(opts, WithLearningRate(mu))...)
}

// NewNLMSFilter creates an NLMS filter whose weights are in FIR coefficient
// order and which applies no leakage.
func NewNLMSFilter(init Init, mu float64, opts ...Option) (*Filter, error) {
	return New(NLMS, init, withPositional(opts, WithLearningRate(mu), WithLeakage(1), WithTapOrder(TapOrderFIR))...)
}

// NewSSLMS creates a sign-sign LMS filter. Every tap moves by exactly mu
// (after leakage) in the direction sign(e)·sign(x).
func NewSSLMS(init Init, mu float64, opts ...Option) (*Filter, error) {
	return New(SSLMS, init, withPositional(opts, WithLearningRate(mu))...)
}

// leakyUpdate computes w ← leak·w + g·x using scratch for g·x.
func leakyUpdate(w, x, scratch []float64, leak, g float64) {
	if leak != 1 {
		vecmath.ScaleBlockInPlace(w, leak)
	}
	vecmath.ScaleBlock(scratch, x, g)
	vecmath.AddBlockInPlace(w, scratch)
}

type lmsRule struct {
	statelessRule
	mu, leak float64
	scratch  []float64
}

func newLMSRule(n int, mu, leak float64) *lmsRule {
	return &lmsRule{mu: mu, leak: leak, scratch: make([]float64, n)}
}

func (r *lmsRule) step(w, x []float64, d float64) (float64, float64) {
	y := vecmath.DotProduct(w, x)
	e := d - y
	leakyUpdate(w, x, r.scratch, r.leak, r.mu*e)
	return y, e
}

type nlmsRule struct {
	statelessRule
	mu, leak float64
	scratch  []float64
}

func newNLMSRule(n int, mu, leak float64) *nlmsRule {
	return &nlmsRule{mu: mu, leak: leak, scratch: make([]float64, n)}
}

func (r *nlmsRule) step(w, x []float64, d float64) (float64, float64) {
	y := vecmath.DotProduct(w, x)
	power := vecmath.DotProduct(x, x)
	e := d - y
	leakyUpdate(w, x, r.scratch, r.leak, r.mu/(nlmsRegularization+power)*e)
	return y, e
}

type sslmsRule struct {
	statelessRule
	mu, leak float64
	signs    []float64
}

func newSSLMSRule(n int, mu, leak float64) *sslmsRule {
	return &sslmsRule{mu: mu, leak: leak, signs: make([]float64, n)}
}

func (r *sslmsRule) step(w, x []float64, d float64) (float64, float64) {
	y := vecmath.DotProduct(w, x)
	e := d - y
	for i, v := range x {
		r.signs[i] = sign(v)
	}
	g := r.mu * sign(e)
	if r.leak != 1 {
		vecmath.ScaleBlockInPlace(w, r.leak)
	}
	vecmath.ScaleBlockInPlace(r.signs, g)
	vecmath.AddBlockInPlace(w, r.signs)
	return y, e
}

// sign returns -1, 0 or +1. NaN maps to +1.
func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v == 0:
		return 0
	default:
		return 1
	}
}
