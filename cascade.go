package cascade

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/precisionlens/cascade/internal/vecmath"
	"github.com/precisionlens/cascade/trace"
)

// Cascade computes the dominant eigenvalue of a symmetric
// positive-definite matrix by escalating power iteration through
// precision tiers.
//
// A Cascade is not safe for concurrent use; create one instance per
// goroutine. Execution is fully sequential by design - there is no
// background work and no cancellation point inside a run.
type Cascade struct {
	problem  Problem
	tiers    []Tier
	logger   *Logger
	observer Observer
	rng      *rand.Rand
	initial  []float64
}

// RunConfig holds per-run parameters for a cascade run.
type RunConfig struct {
	// TargetError is the relative error at which the run stops early.
	// Values <= 0 default to 1e-10.
	TargetError float64

	// MaxIterations caps the total iterations across all tiers.
	// Values <= 0 default to 1000.
	MaxIterations int
}

func (cfg *RunConfig) defaults() {
	if cfg.TargetError <= 0 {
		cfg.TargetError = 1e-10
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 1000
	}
}

// New creates a Cascade for the given problem.
//
// The problem's matrix and true eigenvalue come from external
// collaborators (see spdgen) and are trusted as-is; only structural
// preconditions are checked here.
func New(p Problem, optFns ...Option) (*Cascade, error) {
	o := options{
		tiers:    DefaultTiers(),
		logger:   NoopLogger(),
		observer: NoopObserver{},
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if p.Matrix == nil || p.Matrix.Dim() == 0 {
		return nil, ErrMissingMatrix
	}
	if math.IsNaN(p.TrueEigenvalue) || math.IsInf(p.TrueEigenvalue, 0) {
		return nil, &ErrInvalidEigenvalue{Value: p.TrueEigenvalue}
	}
	if len(o.tiers) == 0 {
		return nil, ErrNoTiers
	}
	if o.initial != nil && len(o.initial) != p.Matrix.Dim() {
		return nil, &ErrDimensionMismatch{Expected: p.Matrix.Dim(), Actual: len(o.initial)}
	}

	seed := o.seed
	if !o.seedSet {
		seed = time.Now().UnixNano()
	}

	return &Cascade{
		problem:  p,
		tiers:    o.tiers,
		logger:   o.logger.WithMatrixSize(p.Matrix.Dim()),
		observer: o.observer,
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible numerics, not crypto
		initial:  o.initial,
	}, nil
}

// startVector returns a fresh unit-norm iterate at full precision.
func (c *Cascade) startVector() []float64 {
	n := c.problem.Matrix.Dim()
	x := make([]float64, n)

	if c.initial != nil {
		copy(x, c.initial)
	} else {
		for i := range x {
			x[i] = c.rng.NormFloat64()
		}
	}

	norm := vecmath.Norm(x)
	if norm > 0 {
		vecmath.ScaleInPlace(x, 1/norm)
	}

	return x
}

// Run executes the precision cascade once and returns the complete
// trace document.
//
// The run walks the tier list in order. Each tier receives the matrix
// and the current iterate cast into its format, iterates until it
// converges or its precision is spent, and hands the iterate to the next
// tier. The run terminates Converged when a tier converges at or below
// the target error, and Exhausted when the tier list or the iteration
// budget runs out - both yield a complete document, differing only in
// the converged metadata.
func (c *Cascade) Run(cfg RunConfig) (*trace.Document, error) {
	cfg.defaults()

	n := c.problem.Matrix.Dim()
	x := c.startVector()

	var fullTrace []trace.Record
	var segments []trace.Segment

	totalIterations := 0
	start := time.Now()
	ctx := context.Background()

	for idx := 0; idx < len(c.tiers) && totalIterations < cfg.MaxIterations; idx++ {
		tier := c.tiers[idx]
		remaining := cfg.MaxIterations - totalIterations

		c.logger.LogSegmentStart(ctx, tier, remaining)

		// Cast the matrix and the carried iterate into this tier's
		// format. The iterate is handed off by value: no aliasing
		// between tiers.
		a := c.problem.Matrix.view(tier.Format)
		tier.Format.Round(x)

		records, xOut, conv := runSegment(
			a, x, n, tier,
			c.problem.TrueEigenvalue, cfg.TargetError,
			remaining, time.Since(start).Seconds(),
			c.observer,
		)
		x = xOut

		// A tier that made no progress at all means no further
		// escalation can help either.
		if len(records) == 0 {
			c.logger.WithTier(tier.Name).Warn("tier produced no iterations, stopping")
			break
		}

		last := records[len(records)-1]
		seg := trace.Segment{
			Precision:      tier.Name,
			DType:          tier.Format.DType(),
			DTypeBytes:     tier.Format.Bytes(),
			Iterations:     len(records),
			StartIteration: totalIterations,
			EndIteration:   totalIterations + len(records),
			StartError:     records[0].RelativeError,
			EndError:       last.RelativeError,
			Time:           last.CumulativeTime - records[0].CumulativeTime,
			Converged:      conv,
		}
		segments = append(segments, seg)
		fullTrace = append(fullTrace, records...)
		totalIterations += len(records)

		c.logger.LogSegmentEnd(ctx, seg)
		c.observer.OnSegmentEnd(seg)

		if conv && last.RelativeError <= cfg.TargetError {
			break
		}
	}

	totalTime := time.Since(start).Seconds()

	// An empty trace has no measurable error; -1 marks "no progress"
	// without putting a non-encodable NaN into the document.
	finalError := -1.0
	if len(fullTrace) > 0 {
		finalError = fullTrace[len(fullTrace)-1].RelativeError
	}

	tp := trace.ComputeThroughput(fullTrace)
	avgPerIter := 0.0
	if totalIterations > 0 {
		avgPerIter = totalTime / float64(totalIterations)
	}

	doc := &trace.Document{
		Metadata: trace.Metadata{
			Algorithm:       "cascading_precision",
			ConditionNumber: c.problem.ConditionNumber,
			MatrixSize:      n,
			TrueEigenvalue:  c.problem.TrueEigenvalue,
			Timestamp:       time.Now().UTC().Format(time.RFC3339Nano),
			TargetError:     cfg.TargetError,
			FinalError:      finalError,
			Converged:       len(fullTrace) > 0 && finalError <= cfg.TargetError,
			MaxIterations:   cfg.MaxIterations,
		},
		PrecisionSegments: segments,
		Trace:             fullTrace,
		Summary: trace.Summary{
			TotalIterations:         totalIterations,
			TotalTimeSeconds:        totalTime,
			PrecisionLevelsUsed:     len(segments),
			AverageTimePerIteration: avgPerIter,
			AvgFLOPS:                tp.AvgFLOPS,
			PeakFLOPS:               tp.PeakFLOPS,
			AvgBandwidthGBps:        tp.AvgBandwidthGBps,
			PeakBandwidthGBps:       tp.PeakBandwidthGBps,
			TotalOps:                tp.TotalOps,
			TotalBytes:              tp.TotalBytes,
		},
	}

	c.logger.LogRunDone(ctx, doc)

	return doc, nil
}
