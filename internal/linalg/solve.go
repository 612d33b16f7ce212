package linalg

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// machineEps is the float64 unit roundoff used for the pseudo-inverse cutoff.
const machineEps = 2.220446049250313e-16

// Solver solves small dense linear systems A·X = B. The zero value is ready
// to use. A Solver keeps its factorization storage between calls so that a
// filter solving a same-sized system every sample does not reallocate it.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	lu  mat.LU
	svd mat.SVD
	u   mat.Dense
	v   mat.Dense
	tmp mat.Dense
	s   []float64
}

// Solve solves a·dst = b through an LU factorization with partial pivoting.
// It returns [ErrSingular] when the factorization is singular or its
// condition number exceeds [mat.ConditionTolerance]; dst is then undefined.
func (s *Solver) Solve(dst *mat.Dense, a, b mat.Matrix) error {
	if err := checkSystem(dst, a, b); err != nil {
		return err
	}

	s.lu.Factorize(a)
	if cond := s.lu.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) || cond > mat.ConditionTolerance {
		return ErrSingular
	}

	// SolveTo only fails with a mat.Condition for ill-conditioned input.
	if err := s.lu.SolveTo(dst, false, b); err != nil {
		return ErrSingular
	}
	return nil
}

// SolveLeastSquares computes the minimum-norm least-squares solution
// dst = pinv(a)·b, where pinv is the Moore-Penrose pseudo-inverse obtained
// from a thin SVD. Singular values below max(m,n)·σmax·eps are treated as
// zero, so rank-deficient and all-zero systems are handled.
func (s *Solver) SolveLeastSquares(dst *mat.Dense, a, b mat.Matrix) error {
	m, n := a.Dims()
	br, bc := b.Dims()
	if br != m {
		return ErrDimensionMismatch
	}
	if !dst.IsEmpty() {
		if r, c := dst.Dims(); r != n || c != bc {
			return ErrDimensionMismatch
		}
	}

	if !s.svd.Factorize(a, mat.SVDThin) {
		return ErrFactorization
	}
	k := min(m, n)
	if cap(s.s) < k {
		s.s = make([]float64, k)
	}
	s.s = s.svd.Values(s.s[:k])
	s.u.Reset()
	s.svd.UTo(&s.u)
	s.v.Reset()
	s.svd.VTo(&s.v)

	tol := 0.0
	if len(s.s) > 0 {
		tol = float64(max(m, n)) * s.s[0] * machineEps
	}

	// tmp = Σ⁺·Uᵀ·b
	s.tmp.Reset()
	s.tmp.Mul(s.u.T(), b)
	raw := s.tmp.RawMatrix()
	for i, sv := range s.s {
		inv := 0.0
		if sv > tol {
			inv = 1 / sv
		}
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j := range row {
			row[j] *= inv
		}
	}

	dst.Mul(&s.v, &s.tmp)
	return nil
}

// SolveRobust tries [Solver.Solve] and, only if it reports [ErrSingular],
// retries with [Solver.SolveLeastSquares]. fellBack reports whether the
// fallback produced the result.
func (s *Solver) SolveRobust(dst *mat.Dense, a, b mat.Matrix) (fellBack bool, err error) {
	err = s.Solve(dst, a, b)
	if !errors.Is(err, ErrSingular) {
		return false, err
	}
	return true, s.SolveLeastSquares(dst, a, b)
}

func checkSystem(dst *mat.Dense, a, b mat.Matrix) error {
	r, c := a.Dims()
	if r != c {
		return ErrNonSquare
	}
	br, bc := b.Dims()
	if br != r {
		return ErrDimensionMismatch
	}
	if !dst.IsEmpty() {
		if dr, dc := dst.Dims(); dr != r || dc != bc {
			return ErrDimensionMismatch
		}
	}
	return nil
}
