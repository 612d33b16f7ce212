package adaptive

import (
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-adaptive/internal/linalg"
)

// NewAP creates an affine projection filter of projection order P = order
// with step size mu and diagonal loading eps.
func NewAP(init Init, mu, eps float64, order int, opts ...Option) (*Filter, error) {
	return New(AP, init, withPositional(opts, WithLearningRate(mu), WithEpsilon(eps), WithOrder(order))...)
}

// apRule projects the update onto the last P input windows. xMem holds the
// windows as columns, newest in column 0; dMem holds the matching desired
// samples.
type apRule struct {
	mu    float64
	order int

	xMem   *mat.Dense // N×P
	dMem   []float64  // P
	eye    *mat.Dense // I_P
	epsEye *mat.Dense // ε·I_P

	a, z     *mat.Dense    // P×P
	yVec     *mat.VecDense // P
	eVec     *mat.VecDense // P
	ze       *mat.VecDense // P
	dw       *mat.VecDense // N
	solver   linalg.Solver
	singular int
	skipped  int
}

func newAPRule(n int, mu, eps float64, order int) *apRule {
	return &apRule{
		mu:     mu,
		order:  order,
		xMem:   mat.NewDense(n, order, nil),
		dMem:   make([]float64, order),
		eye:    linalg.Identity(order),
		epsEye: linalg.ScaledIdentity(order, eps),
		a:      mat.NewDense(order, order, nil),
		z:      mat.NewDense(order, order, nil),
		yVec:   mat.NewVecDense(order, nil),
		eVec:   mat.NewVecDense(order, nil),
		ze:     mat.NewVecDense(order, nil),
		dw:     mat.NewVecDense(n, nil),
	}
}

func (r *apRule) step(w, x []float64, d float64) (float64, float64) {
	_ = linalg.PushColumn(r.xMem, x) // shapes fixed at construction
	copy(r.dMem[1:], r.dMem[:r.order-1])
	r.dMem[0] = d

	r.yVec.MulVec(r.xMem.T(), mat.NewVecDense(len(w), w))
	for k, dk := range r.dMem {
		r.eVec.SetVec(k, dk-r.yVec.AtVec(k))
	}

	r.a.Mul(r.xMem.T(), r.xMem)
	r.a.Add(r.a, r.epsEye)

	fellBack, err := r.solver.SolveRobust(r.z, r.a, r.eye)
	if fellBack {
		r.singular++
	}
	if err == nil {
		r.ze.MulVec(r.z, r.eVec)
		r.dw.MulVec(r.xMem, r.ze)
		dw := r.dw.RawVector().Data
		vecmath.ScaleBlockInPlace(dw, r.mu)
		vecmath.AddBlockInPlace(w, dw)
	} else {
		r.skipped++
	}

	return r.yVec.AtVec(0), r.eVec.AtVec(0)
}

func (r *apRule) beginRun() {
	r.singular = 0
	r.skipped = 0
}

func (r *apRule) reset() {
	r.xMem.Zero()
	clear(r.dMem)
	r.beginRun()
}

func (r *apRule) report(d *Diagnostics) {
	d.SingularFallbacks = r.singular
	d.SkippedUpdates = r.skipped
}
