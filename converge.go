package cascade

import (
	"math"

	"github.com/precisionlens/cascade/internal/vecmath"
)

const (
	// nearNullNorm is the product-vector norm below which the iterate is
	// numerically degenerate and the segment ends.
	nearNullNorm = 1e-10

	// tinyEigenvalue guards the relative-change division: below this the
	// absolute change is used instead.
	tinyEigenvalue = 1e-14

	// stagnationWindow is the residual improvement below which an
	// iteration counts as stagnant.
	stagnationWindow = 1e-10
)

// converged applies the dual precision-aware convergence test: the
// relative eigenvalue change and the residual norm must both be strictly
// inside the tier's tolerances. Either criterion alone is insufficient -
// an eigenvalue can look stable while the eigenvector is still rotating,
// and vice versa.
//
// ax is the precomputed product A·x for the current iterate. Returns the
// test result and the residual norm ‖A·x − λ·x‖.
func converged(tier Tier, ax, x []float64, lambda, lambdaOld float64) (bool, float64) {
	var relChange float64
	if math.Abs(lambdaOld) > tinyEigenvalue {
		relChange = math.Abs(lambda-lambdaOld) / math.Abs(lambdaOld)
	} else {
		relChange = math.Abs(lambda - lambdaOld)
	}

	residual := vecmath.ResidualNorm(ax, x, lambda)

	return relChange < tier.EigenvalueTol && residual < tier.ResidualTol, residual
}

// stagnationCounter tracks consecutive iterations without meaningful
// residual improvement. This is distinct from the convergence test: it
// detects the tier's precision ceiling - a residual stuck above
// residual_tol but no longer moving - and triggers escalation instead of
// false convergence.
type stagnationCounter struct {
	limit  int
	count  int
	last   float64
	primed bool
}

// observe feeds the residual norm of the iteration that just finished.
// The first observation only primes the comparison baseline.
func (s *stagnationCounter) observe(residual float64) {
	if s.primed {
		if math.Abs(s.last-residual) < stagnationWindow {
			s.count++
		} else {
			s.count = 0
		}
	}
	s.last = residual
	s.primed = true
}

// exhausted reports whether the stagnation limit has been reached.
func (s *stagnationCounter) exhausted() bool {
	return s.count >= s.limit
}

// relativeError measures |estimate − truth| / |truth|, falling back to
// the absolute difference when the reference eigenvalue is numerically
// zero (e.g. a zero matrix).
func relativeError(estimate, truth float64) float64 {
	if math.Abs(truth) > tinyEigenvalue {
		return math.Abs(estimate-truth) / math.Abs(truth)
	}
	return math.Abs(estimate - truth)
}
