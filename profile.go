package cascade

import (
	"time"

	"github.com/precisionlens/cascade/trace"
)

// ProfileConfig holds parameters for a single-precision instrumented
// run.
type ProfileConfig struct {
	// MaxIterations caps the run. Values <= 0 default to 1000.
	MaxIterations int

	// Tolerance is recorded in the document metadata for downstream
	// tooling; it does not drive control flow. Values <= 0 default to
	// 1e-10.
	Tolerance float64
}

func (cfg *ProfileConfig) defaults() {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 1000
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = 1e-10
	}
}

// ieee754Threshold returns the relative error floor achievable at a
// precision level, used by profile runs as a legacy stop condition.
func ieee754Threshold(name string) (float64, bool) {
	switch name {
	case "FP64":
		return 1e-15, true
	case "FP32":
		return 1e-7, true
	case "FP16":
		return 1e-3, true
	case "FP8":
		return 1e-1, true
	default:
		return 0, false
	}
}

// Profile runs power iteration at a single precision tier with full
// instrumentation, without cascading. It stops on the tier's dual
// convergence criterion or when the relative error crosses the format's
// IEEE-754 precision floor, whichever comes first.
//
// This is the study counterpart to Run: one document per (precision,
// matrix) pair for convergence-comparison plots and the dashboard.
func (c *Cascade) Profile(tier Tier, cfg ProfileConfig) (*trace.ProfileDocument, error) {
	cfg.defaults()

	n := c.problem.Matrix.Dim()

	x := c.startVector()
	tier.Format.Round(x)
	a := c.problem.Matrix.view(tier.Format)

	r := newSegmentRunner(a, x, n, tier, c.problem.TrueEigenvalue, 0)

	var records []trace.Record
	convergedRun := false
	var convergenceIteration *int

	threshold, hasThreshold := ieee754Threshold(tier.Name)
	thresholdReached := false
	var thresholdIteration *int

	start := time.Now()

	for i := 0; i < cfg.MaxIterations; i++ {
		rec, isConv, ok := r.step(i)
		if !ok {
			break
		}

		records = append(records, rec)
		c.observer.OnIteration(rec)

		if isConv && !convergedRun {
			convergedRun = true
			it := i
			convergenceIteration = &it
		}
		if hasThreshold && rec.RelativeError < threshold && !thresholdReached {
			thresholdReached = true
			it := i
			thresholdIteration = &it
		}

		if convergedRun || thresholdReached {
			break
		}
	}

	totalTime := time.Since(start).Seconds()

	finalError := -1.0
	if len(records) > 0 {
		finalError = records[len(records)-1].RelativeError
	}

	var thresholdPtr *float64
	if hasThreshold {
		thresholdPtr = &threshold
	}

	tp := trace.ComputeThroughput(records)

	doc := &trace.ProfileDocument{
		Metadata: trace.ProfileMetadata{
			Precision:            tier.Name,
			DType:                tier.Format.DType(),
			DTypeBytes:           tier.Format.Bytes(),
			ConditionNumber:      c.problem.ConditionNumber,
			MatrixSize:           n,
			TrueEigenvalue:       c.problem.TrueEigenvalue,
			Timestamp:            time.Now().UTC().Format(time.RFC3339Nano),
			Converged:            convergedRun,
			ConvergenceIteration: convergenceIteration,
			FinalError:           finalError,
			Tolerance:            cfg.Tolerance,
			MaxIterations:        cfg.MaxIterations,
			IEEE754Threshold:     thresholdPtr,
			ThresholdReached:     thresholdReached,
			ThresholdIteration:   thresholdIteration,
		},
		Trace: records,
		Summary: trace.ProfileSummary{
			TotalIterations:   len(records),
			TotalTimeSeconds:  totalTime,
			TimeTo1e3Error:    trace.TimeToError(records, 1e-3),
			TimeTo1e6Error:    trace.TimeToError(records, 1e-6),
			TimeTo1e9Error:    trace.TimeToError(records, 1e-9),
			AvgFLOPS:          tp.AvgFLOPS,
			PeakFLOPS:         tp.PeakFLOPS,
			AvgBandwidthGBps:  tp.AvgBandwidthGBps,
			PeakBandwidthGBps: tp.PeakBandwidthGBps,
			TotalOps:          tp.TotalOps,
			TotalBytes:        tp.TotalBytes,
		},
	}

	return doc, nil
}
