package cascade

import (
	"github.com/precisionlens/cascade/internal/vecmath"
	"github.com/precisionlens/cascade/quantize"
)

// Matrix is an immutable dense n×n real matrix in row-major order, held
// at full precision. Symmetry and positive-definiteness are the
// generator's responsibility and are never re-verified here.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix creates a Matrix from row-major data of length n·n.
// The data is copied.
func NewMatrix(n int, data []float64) (*Matrix, error) {
	if n <= 0 {
		return nil, &ErrInvalidDimension{Dimension: n}
	}
	if len(data) != n*n {
		return nil, &ErrDimensionMismatch{Expected: n * n, Actual: len(data)}
	}
	return &Matrix{n: n, data: append([]float64(nil), data...)}, nil
}

// Diagonal creates a diagonal matrix from the given values.
func Diagonal(vals ...float64) *Matrix {
	n := len(vals)
	data := make([]float64, n*n)
	for i, v := range vals {
		data[i*n+i] = v
	}
	return &Matrix{n: n, data: data}
}

// Dim returns the matrix dimension n.
func (m *Matrix) Dim() int { return m.n }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.n+j] }

// Data returns a copy of the row-major backing data.
func (m *Matrix) Data() []float64 {
	return append([]float64(nil), m.data...)
}

// MulVec computes dst = A·x. dst must not alias x.
func (m *Matrix) MulVec(dst, x []float64) {
	vecmath.MatVec(dst, m.data, x, m.n)
}

// view returns a copy of the backing data cast into the given format.
// The original matrix is untouched; each tier works on its own view.
func (m *Matrix) view(f quantize.Format) []float64 {
	cp := append([]float64(nil), m.data...)
	f.Round(cp)
	return cp
}

// Problem bundles the solver's external inputs: the matrix from the SPD
// generator, its true dominant eigenvalue from an independent dense
// eigensolver, and the condition number used to build it. The core
// assumes these are valid and does not revalidate them.
type Problem struct {
	Matrix          *Matrix
	TrueEigenvalue  float64
	ConditionNumber float64
}
