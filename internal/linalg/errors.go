package linalg

import "errors"

var (
	// ErrSingular is returned when the primary factorization finds the
	// matrix singular or too ill-conditioned to trust the solution.
	ErrSingular = errors.New("linalg: matrix is numerically singular")

	// ErrNonSquare is returned when a square matrix was required.
	ErrNonSquare = errors.New("linalg: matrix is not square")

	// ErrDimensionMismatch is returned for operands with incompatible shapes.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrFactorization is returned when the SVD fails to converge.
	ErrFactorization = errors.New("linalg: factorization failed")
)
