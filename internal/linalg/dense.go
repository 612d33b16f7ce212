package linalg

import "gonum.org/v1/gonum/mat"

// Identity returns the n×n identity matrix.
func Identity(n int) *mat.Dense {
	return ScaledIdentity(n, 1)
}

// ScaledIdentity returns the n×n matrix s·I.
func ScaledIdentity(n int, s float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := range n {
		m.Set(i, i, s)
	}
	return m
}

// Outer stores the outer product x⊗y (len(x) rows, len(y) columns) in dst.
// dst must be empty or already have that shape.
func Outer(dst *mat.Dense, x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return ErrDimensionMismatch
	}
	if !dst.IsEmpty() {
		if r, c := dst.Dims(); r != len(x) || c != len(y) {
			return ErrDimensionMismatch
		}
	}
	dst.Outer(1, mat.NewVecDense(len(x), x), mat.NewVecDense(len(y), y))
	return nil
}

// PushColumn shifts every column of m one place to the right, dropping the
// last column, and writes col into column 0. len(col) must equal the number
// of rows.
func PushColumn(m *mat.Dense, col []float64) error {
	r, c := m.Dims()
	if len(col) != r {
		return ErrDimensionMismatch
	}
	raw := m.RawMatrix()
	for i := range r {
		row := raw.Data[i*raw.Stride : i*raw.Stride+c]
		copy(row[1:], row[:c-1])
		row[0] = col[i]
	}
	return nil
}
