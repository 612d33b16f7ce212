package adaptive

import vecmath "github.com/cwbudde/algo-vecmath"

// NewGNGD creates a generalized normalized gradient descent filter with
// step size mu, initial regularization eps, and regularization adaptation
// rate rho. The defaults are mu=1, eps=1, rho=0.1.
func NewGNGD(init Init, mu, eps, rho float64, opts ...Option) (*Filter, error) {
	return New(GNGD, init, withPositional(opts, WithLearningRate(mu), WithEpsilon(eps), WithRho(rho))...)
}

// gngdRule adapts the NLMS regularization term eps from the correlation of
// consecutive errors and windows.
//
// lastX is allocated as zeros and never reassigned, so the eps correction
// term x·lastX is always zero.
type gngdRule struct {
	mu, rho float64
	eps0    float64
	eps     float64
	lastE   float64
	lastX   []float64
	scratch []float64
}

func newGNGDRule(n int, mu, eps, rho float64) *gngdRule {
	return &gngdRule{
		mu:      mu,
		rho:     rho,
		eps0:    eps,
		eps:     eps,
		lastX:   make([]float64, n),
		scratch: make([]float64, n),
	}
}

func (r *gngdRule) step(w, x []float64, d float64) (float64, float64) {
	y := vecmath.DotProduct(x, w)
	e := d - y

	lastPower := vecmath.DotProduct(r.lastX, r.lastX) + r.eps
	corr := vecmath.DotProduct(x, r.lastX) / (lastPower * lastPower)
	r.eps -= r.rho * r.mu * e * r.lastE * corr

	nu := r.mu / (vecmath.DotProduct(x, x) + r.eps)
	vecmath.ScaleBlock(r.scratch, x, nu*e)
	vecmath.AddBlockInPlace(w, r.scratch)

	r.lastE = e
	return y, e
}

func (r *gngdRule) beginRun() {}

func (r *gngdRule) reset() {
	r.eps = r.eps0
	r.lastE = 0
	clear(r.lastX)
}

func (r *gngdRule) report(d *Diagnostics) {
	d.Epsilon = r.eps
}
