// Package study drives batch trace generation: one profile trace per
// precision × condition number pair plus one cascade trace per
// condition number, persisted through a tracestore for the dashboard.
package study

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/precisionlens/cascade"
	"github.com/precisionlens/cascade/codec"
	"github.com/precisionlens/cascade/spdgen"
	"github.com/precisionlens/cascade/testutil"
	"github.com/precisionlens/cascade/tracestore"
)

// Config parameterizes a study run. Zero values take the defaults
// below, which match the standard trace library.
type Config struct {
	// MatrixSize is the test matrix dimension. Default 50.
	MatrixSize int

	// ConditionNumbers are the condition numbers to sweep.
	// Default {10, 100, 1000}.
	ConditionNumbers []float64

	// MaxIterations caps each individual run. Default 500.
	MaxIterations int

	// TargetError is the cascade runs' stopping error. Default 1e-10.
	TargetError float64

	// Seed makes the whole study reproducible: matrix generation and
	// every solver start vector derive from it. Default 1.
	Seed int64

	// Concurrency bounds how many runs execute at once. Runs are
	// independent, the solver itself stays sequential. Default 4.
	Concurrency int
}

func (cfg *Config) defaults() {
	if cfg.MatrixSize <= 0 {
		cfg.MatrixSize = 50
	}
	if len(cfg.ConditionNumbers) == 0 {
		cfg.ConditionNumbers = []float64{10, 100, 1000}
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 500
	}
	if cfg.TargetError <= 0 {
		cfg.TargetError = 1e-10
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
}

// Result is the outcome of one persisted run.
type Result struct {
	Name            string // document name in the store
	Precision       string // tier name, or "CASCADE" for cascade runs
	ConditionNumber float64
	MatrixSize      int
	Converged       bool
	FinalError      float64
	Iterations      int
	Timestamp       string
	Err             error // non-nil when the run or the save failed
}

// Report aggregates a completed study.
type Report struct {
	Results []Result
}

// Generated counts successfully persisted traces.
func (r *Report) Generated() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts runs that errored.
func (r *Report) Failed() int {
	return len(r.Results) - r.Generated()
}

// Runner executes studies against a trace store.
type Runner struct {
	store  tracestore.Store
	codec  codec.Codec
	logger *cascade.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger for study progress. Defaults to no
// logging.
func WithLogger(l *cascade.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a study runner over the given store, encoding
// documents with the given codec.
func NewRunner(store tracestore.Store, c codec.Codec, optFns ...RunnerOption) *Runner {
	r := &Runner{
		store:  store,
		codec:  c,
		logger: cascade.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Run executes the full sweep. Individual run failures are recorded in
// the report rather than aborting the study; Run itself fails only on
// matrix generation errors or context cancellation.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg.defaults()

	// Problems are generated up front, one per condition number, so
	// every precision sees the identical matrix. Generation is seeded
	// per condition number to stay independent of sweep order.
	problems := make(map[float64]cascade.Problem, len(cfg.ConditionNumbers))
	for i, cond := range cfg.ConditionNumbers {
		p, err := spdgen.Generate(cfg.MatrixSize, cond, testutil.NewRNG(cfg.Seed+int64(i)))
		if err != nil {
			return nil, fmt.Errorf("generate matrix for cond=%g: %w", cond, err)
		}
		problems[cond] = p
	}

	report := &Report{}
	var mu sync.Mutex
	record := func(res Result) {
		mu.Lock()
		report.Results = append(report.Results, res)
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for _, cond := range cfg.ConditionNumbers {
		p := problems[cond]

		for _, tier := range cascade.DefaultTiers() {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				record(r.profileRun(ctx, p, tier, cfg))
				return nil
			})
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record(r.cascadeRun(ctx, p, cfg))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("study complete",
		"generated", report.Generated(),
		"failed", report.Failed(),
	)

	return report, nil
}

func (r *Runner) profileRun(ctx context.Context, p cascade.Problem, tier cascade.Tier, cfg Config) Result {
	name := tracestore.TraceName(tier.Name, p.ConditionNumber, cfg.MatrixSize)
	res := Result{
		Name:            name,
		Precision:       tier.Name,
		ConditionNumber: p.ConditionNumber,
		MatrixSize:      cfg.MatrixSize,
	}

	c, err := cascade.New(p, cascade.WithSeed(cfg.Seed), cascade.WithLogger(r.logger))
	if err != nil {
		res.Err = err
		return res
	}

	doc, err := c.Profile(tier, cascade.ProfileConfig{MaxIterations: cfg.MaxIterations})
	if err != nil {
		res.Err = fmt.Errorf("profile %s cond=%g: %w", tier.Name, p.ConditionNumber, err)
		return res
	}

	res.Converged = doc.Metadata.Converged
	res.FinalError = doc.Metadata.FinalError
	res.Iterations = doc.Summary.TotalIterations
	res.Timestamp = doc.Metadata.Timestamp

	if err := tracestore.Save(ctx, r.store, r.codec, name, doc); err != nil {
		res.Err = err
		return res
	}

	r.logger.Info("profile trace saved",
		"name", name,
		"converged", res.Converged,
		"iterations", res.Iterations,
	)
	return res
}

func (r *Runner) cascadeRun(ctx context.Context, p cascade.Problem, cfg Config) Result {
	name := tracestore.CascadeName(p.ConditionNumber, cfg.MatrixSize)
	res := Result{
		Name:            name,
		Precision:       "CASCADE",
		ConditionNumber: p.ConditionNumber,
		MatrixSize:      cfg.MatrixSize,
	}

	c, err := cascade.New(p, cascade.WithSeed(cfg.Seed), cascade.WithLogger(r.logger))
	if err != nil {
		res.Err = err
		return res
	}

	doc, err := c.Run(cascade.RunConfig{
		TargetError:   cfg.TargetError,
		MaxIterations: cfg.MaxIterations,
	})
	if err != nil {
		res.Err = fmt.Errorf("cascade cond=%g: %w", p.ConditionNumber, err)
		return res
	}

	res.Converged = doc.Metadata.Converged
	res.FinalError = doc.Metadata.FinalError
	res.Iterations = doc.Summary.TotalIterations
	res.Timestamp = doc.Metadata.Timestamp

	if err := tracestore.Save(ctx, r.store, r.codec, name, doc); err != nil {
		res.Err = err
		return res
	}

	r.logger.Info("cascade trace saved",
		"name", name,
		"converged", res.Converged,
		"iterations", res.Iterations,
	)
	return res
}
