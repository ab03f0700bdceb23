// Package cascade implements an adaptive precision-cascading power
// iteration for computing the dominant eigenvalue of a symmetric
// positive-definite matrix.
//
// The solver escalates through numeric precision tiers (emulated FP8 →
// FP16 → FP32 → FP64): each tier iterates until its precision-aware
// convergence test holds or its residual stops improving, then hands the
// eigenvector estimate to the next tier. A vector nearly converged at
// low precision needs only a few refining iterations at higher
// precision, which is the whole efficiency argument.
//
// # Quick start
//
//	p, err := spdgen.Generate(50, 10, testutil.NewRNG(42))
//	if err != nil {
//	    panic(err)
//	}
//
//	c, err := cascade.New(p, cascade.WithSeed(42))
//	if err != nil {
//	    panic(err)
//	}
//
//	doc, err := c.Run(cascade.RunConfig{TargetError: 1e-10, MaxIterations: 1000})
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(doc.Metadata.Converged, doc.Metadata.FinalError)
//
// Every run produces a trace.Document: per-iteration records (timing,
// eigenvalue estimate, residual, theoretical FLOP and bandwidth
// figures), one segment per tier visited, and summary statistics. The
// tracestore package persists documents for downstream analysis.
//
// The computational core performs no I/O. Progress reporting goes
// through an optional Observer; see ProgressLogger for a rate-limited
// logging implementation.
package cascade
