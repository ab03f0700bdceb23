package cascade

import (
	"golang.org/x/time/rate"

	"github.com/precisionlens/cascade/trace"
)

// Observer receives progress callbacks during a run. The computational
// core performs no I/O of its own; all reporting happens through this
// interface.
//
// Callbacks run synchronously on the solver goroutine, so
// implementations should be cheap.
type Observer interface {
	// OnSegmentStart is called when a tier produces its first iteration
	// record, just before OnIteration delivers it. A tier that produces
	// no records fires neither OnSegmentStart nor OnSegmentEnd.
	OnSegmentStart(tier Tier)

	// OnIteration is called after each iteration record is appended.
	OnIteration(rec trace.Record)

	// OnSegmentEnd is called with the sealed segment once a tier ends.
	OnSegmentEnd(seg trace.Segment)
}

// NoopObserver is a no-op implementation of Observer.
// Use this when progress reporting is not needed.
type NoopObserver struct{}

func (NoopObserver) OnSegmentStart(Tier)        {}
func (NoopObserver) OnIteration(trace.Record)   {}
func (NoopObserver) OnSegmentEnd(trace.Segment) {}

// ProgressLogger is an Observer that logs progress through a Logger.
// Per-iteration output is rate-limited so large runs do not flood the
// log; segment boundaries are always logged.
type ProgressLogger struct {
	logger  *Logger
	limiter *rate.Limiter
}

// NewProgressLogger creates a ProgressLogger. If logger is nil, a text
// logger is used. perSecond caps iteration log lines per second; values
// <= 0 default to 5.
func NewProgressLogger(logger *Logger, perSecond float64) *ProgressLogger {
	if logger == nil {
		logger = NewLogger(nil)
	}
	if perSecond <= 0 {
		perSecond = 5
	}
	return &ProgressLogger{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// OnSegmentStart implements Observer.
func (p *ProgressLogger) OnSegmentStart(tier Tier) {
	p.logger.Info("switching precision tier",
		"tier", tier.Name,
		"format", tier.Format.String(),
		"max_stagnant", tier.MaxStagnant,
	)
}

// OnIteration implements Observer.
func (p *ProgressLogger) OnIteration(rec trace.Record) {
	if !p.limiter.Allow() {
		return
	}
	p.logger.Debug("iteration",
		"tier", rec.Precision,
		"iteration", rec.Iteration,
		"eigenvalue", rec.Eigenvalue,
		"relative_error", rec.RelativeError,
		"residual_norm", rec.ResidualNorm,
	)
}

// OnSegmentEnd implements Observer.
func (p *ProgressLogger) OnSegmentEnd(seg trace.Segment) {
	p.logger.Info("tier segment completed",
		"tier", seg.Precision,
		"iterations", seg.Iterations,
		"start_error", seg.StartError,
		"end_error", seg.EndError,
		"converged", seg.Converged,
	)
}
