package cascade

import (
	"time"

	"github.com/precisionlens/cascade/internal/vecmath"
	"github.com/precisionlens/cascade/quantize"
	"github.com/precisionlens/cascade/trace"
)

// segmentRunner performs power iterations at a fixed precision tier. It
// owns the eigenvector estimate for the duration of the segment; the
// caller takes it back by value when the segment ends.
type segmentRunner struct {
	tier    Tier
	trueEig float64
	n       int

	a     []float64 // matrix view in the tier's format
	awork []float64 // per-iteration quantized copy (emulated tiers only)
	x     []float64 // current iterate, unit norm
	y     []float64 // product buffer
	z     []float64 // Rayleigh/residual product buffer

	lambdaOld  float64
	timeOffset float64
}

// newSegmentRunner takes a matrix view and an iterate already cast to
// the tier's format. timeOffset is the cumulative run time accrued by
// earlier segments.
func newSegmentRunner(a, x []float64, n int, tier Tier, trueEig, timeOffset float64) *segmentRunner {
	r := &segmentRunner{
		tier:       tier,
		trueEig:    trueEig,
		n:          n,
		a:          a,
		x:          x,
		y:          make([]float64, n),
		z:          make([]float64, n),
		timeOffset: timeOffset,
	}
	if tier.Format.Emulated() {
		r.awork = make([]float64, len(a))
	}
	return r
}

// vector returns the current iterate.
func (r *segmentRunner) vector() []float64 { return r.x }

// step runs one power iteration and returns its record. i is the
// zero-based iteration index within this segment; the convergence test
// is skipped when i == 0 since there is no eigenvalue history yet.
//
// ok=false signals the near-null early exit: the product vector was
// numerically degenerate and no record was produced.
func (r *segmentRunner) step(i int) (rec trace.Record, conv bool, ok bool) {
	start := time.Now()

	// The emulated tier re-quantizes the matrix and the iterate before
	// every multiply; the entry cast alone does not model its mantissa
	// loss.
	ac := r.a
	if r.tier.Format.Emulated() {
		copy(r.awork, r.a)
		quantize.FP8(r.awork)
		ac = r.awork
		quantize.FP8(r.x)
	}

	vecmath.MatVec(r.y, ac, r.x, r.n)
	if r.tier.Format.Emulated() {
		quantize.FP8(r.y)
	}

	norm := vecmath.Norm(r.y)
	if norm < nearNullNorm {
		return trace.Record{}, false, false
	}

	// Normalize before the Rayleigh quotient for numerical stability,
	// then round the fresh iterate into the tier's format.
	vecmath.ScaleInPlace(r.y, 1/norm)
	r.tier.Format.Round(r.y)

	// The Rayleigh product and quotient are held in the tier's format,
	// so a narrow tier's eigenvalue estimate floors at that format's
	// precision.
	vecmath.MatVec(r.z, ac, r.y, r.n)
	r.tier.Format.Round(r.z)
	lambda := r.tier.Format.RoundValue(vecmath.Dot(r.y, r.z))
	relErr := relativeError(lambda, r.trueEig)

	var isConv bool
	var residual float64
	if i == 0 {
		residual = vecmath.ResidualNorm(r.z, r.y, lambda)
	} else {
		isConv, residual = converged(r.tier, r.z, r.y, lambda, r.lambdaOld)
	}

	dur := time.Since(start).Seconds()
	cumulative := r.timeOffset + dur
	r.timeOffset = cumulative

	n64 := int64(r.n)
	ops := 2*n64*n64 + n64
	bytes := (n64*n64 + 2*n64) * int64(r.tier.Format.Bytes())

	// Elapsed time can measure as zero on coarse clocks; report the
	// rates as unknown (0) rather than dividing.
	var flops, bandwidth float64
	if dur > 0 {
		flops = float64(ops) / dur
		bandwidth = float64(bytes) / dur / 1e9
	}

	rec = trace.Record{
		Iteration:                i,
		Precision:                r.tier.Name,
		WallTime:                 dur,
		CumulativeTime:           cumulative,
		Eigenvalue:               lambda,
		RelativeError:            relErr,
		ResidualNorm:             residual,
		VectorNorm:               norm,
		TheoreticalFLOPS:         flops,
		TheoreticalBandwidthGBps: bandwidth,
		OpsCount:                 ops,
		BytesTransferred:         bytes,
	}

	copy(r.x, r.y)
	r.lambdaOld = lambda

	return rec, isConv, true
}

// runSegment iterates one tier until convergence, target error,
// stagnation, or budget exhaustion. It returns the records produced, the
// final iterate (in the tier's format), and whether the tier converged.
//
// Stop conditions are checked in priority order: the dual convergence
// criterion, then the global target error, then stagnation. Only the
// first two count as convergence; stagnation means the tier's precision
// ceiling was hit and escalation is needed.
func runSegment(a, x []float64, n int, tier Tier, trueEig, targetError float64, budget int, timeOffset float64, obs Observer) ([]trace.Record, []float64, bool) {
	r := newSegmentRunner(a, x, n, tier, trueEig, timeOffset)
	stagnation := stagnationCounter{limit: tier.MaxStagnant}

	var records []trace.Record
	conv := false

	for i := 0; i < budget; i++ {
		rec, isConv, ok := r.step(i)
		if !ok {
			break
		}

		if len(records) == 0 {
			obs.OnSegmentStart(tier)
		}
		records = append(records, rec)
		obs.OnIteration(rec)
		stagnation.observe(rec.ResidualNorm)

		if isConv {
			conv = true
			break
		}
		if rec.RelativeError <= targetError {
			conv = true
			break
		}
		if stagnation.exhausted() {
			conv = false
			break
		}
	}

	return records, r.vector(), conv
}
