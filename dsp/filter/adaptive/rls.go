package adaptive

import (
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-adaptive/internal/linalg"
)

// NewRLS creates a recursive least squares filter. forgetting is the
// exponential forgetting factor λ (typically just below 1); eps sets the
// initial inverse correlation estimate to (1/eps)·I.
func NewRLS(init Init, forgetting, eps float64, opts ...Option) (*Filter, error) {
	return New(RLS, init, withPositional(opts, WithForgettingFactor(forgetting), WithEpsilon(eps))...)
}

// rlsRule keeps r, the running estimate of the inverse input correlation
// matrix. Per step:
//
//	p = r·(x⊗x)·r
//	g = x·r·xᵗ + λ
//	r ← (r - p/g) / λ
//	w ← w + e·(r·xᵗ)
//
// The gain denominator g is not guarded.
type rlsRule struct {
	lambda float64
	eps    float64
	r      *mat.Dense

	outer   mat.Dense
	tmp     *mat.Dense
	p       *mat.Dense
	rx      *mat.VecDense
	scratch []float64
}

func newRLSRule(n int, lambda, eps float64) *rlsRule {
	return &rlsRule{
		lambda:  lambda,
		eps:     eps,
		r:       linalg.ScaledIdentity(n, 1/eps),
		tmp:     mat.NewDense(n, n, nil),
		p:       mat.NewDense(n, n, nil),
		rx:      mat.NewVecDense(n, nil),
		scratch: make([]float64, n),
	}
}

func (r *rlsRule) step(w, x []float64, d float64) (float64, float64) {
	y := vecmath.DotProduct(x, w)
	e := d - y

	xv := mat.NewVecDense(len(x), x)
	_ = linalg.Outer(&r.outer, x, x) // shapes fixed at construction
	r.tmp.Mul(r.r, &r.outer)
	r.p.Mul(r.tmp, r.r)
	g := mat.Inner(xv, r.r, xv) + r.lambda

	rr := r.r.RawMatrix()
	pr := r.p.RawMatrix()
	n := rr.Rows
	for i := range n {
		row := rr.Data[i*rr.Stride : i*rr.Stride+n]
		prow := pr.Data[i*pr.Stride : i*pr.Stride+n]
		for j := range row {
			row[j] = 1 / r.lambda * (row[j] - prow[j]/g)
		}
	}

	r.rx.MulVec(r.r, xv)
	vecmath.ScaleBlock(r.scratch, r.rx.RawVector().Data, e)
	vecmath.AddBlockInPlace(w, r.scratch)
	return y, e
}

func (r *rlsRule) beginRun() {}

func (r *rlsRule) reset() {
	r.r.Copy(linalg.ScaledIdentity(r.r.RawMatrix().Rows, 1/r.eps))
}

func (r *rlsRule) report(*Diagnostics) {}
