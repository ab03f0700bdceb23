// Package spdgen constructs symmetric positive definite test problems
// with a prescribed condition number. The spectrum is linearly spaced
// between 1 and the condition number and rotated by a random orthogonal
// basis, so the dominant eigenvalue and the spectral gap are both known
// by construction.
package spdgen

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/precisionlens/cascade"
	"github.com/precisionlens/cascade/testutil"
)

// Generate builds an n x n symmetric positive definite problem whose
// eigenvalues are linearly spaced in [1, cond]. The true dominant
// eigenvalue is recovered from the assembled matrix rather than assumed,
// so it reflects any rounding introduced by the construction.
func Generate(n int, cond float64, rng *testutil.RNG) (cascade.Problem, error) {
	if n <= 0 {
		return cascade.Problem{}, fmt.Errorf("spdgen: dimension must be positive, got %d", n)
	}
	if cond < 1 {
		return cascade.Problem{}, fmt.Errorf("spdgen: condition number must be >= 1, got %g", cond)
	}

	// Random orthogonal basis from the QR factorization of a Gaussian
	// matrix.
	raw := make([]float64, n*n)
	rng.FillNormal(raw)

	var qr mat.QR
	qr.Factorize(mat.NewDense(n, n, raw))
	var q mat.Dense
	qr.QTo(&q)

	// A = Q diag(lambda) Qᵀ with lambda_i spaced linearly in [1, cond].
	lambda := spacedEigenvalues(n, cond)
	d := mat.NewDiagDense(n, lambda)

	var qd, a mat.Dense
	qd.Mul(&q, d)
	a.Mul(&qd, q.T())

	// Floating point breaks exact symmetry; restore it so the Rayleigh
	// quotient behaves.
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (a.At(i, j)+a.At(j, i))/2)
		}
	}

	m, err := matrixFromSym(sym)
	if err != nil {
		return cascade.Problem{}, err
	}

	var eig mat.EigenSym
	if !eig.Factorize(sym, false) {
		return cascade.Problem{}, fmt.Errorf("spdgen: eigendecomposition failed for n=%d cond=%g", n, cond)
	}
	values := eig.Values(nil)
	trueEig := values[0]
	for _, v := range values[1:] {
		if v > trueEig {
			trueEig = v
		}
	}

	return cascade.Problem{
		Matrix:          m,
		TrueEigenvalue:  trueEig,
		ConditionNumber: cond,
	}, nil
}

// MustGenerate is Generate for test setup paths where a construction
// failure is a programming error.
func MustGenerate(n int, cond float64, rng *testutil.RNG) cascade.Problem {
	p, err := Generate(n, cond, rng)
	if err != nil {
		panic(err)
	}
	return p
}

func spacedEigenvalues(n int, cond float64) []float64 {
	vals := make([]float64, n)
	if n == 1 {
		vals[0] = cond
		return vals
	}
	step := (cond - 1) / float64(n-1)
	for i := range vals {
		vals[i] = 1 + step*float64(i)
	}
	return vals
}

func matrixFromSym(s *mat.SymDense) (*cascade.Matrix, error) {
	n := s.SymmetricDim()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = s.At(i, j)
		}
	}
	return cascade.NewMatrix(n, data)
}
