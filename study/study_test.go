package study

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionlens/cascade/codec"
	"github.com/precisionlens/cascade/trace"
	"github.com/precisionlens/cascade/tracestore"
)

func newLocalStore(t *testing.T) *tracestore.LocalStore {
	t.Helper()
	s, err := tracestore.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestRunner_SweepPersistsAllTraces(t *testing.T) {
	ctx := context.Background()
	store := newLocalStore(t)
	runner := NewRunner(store, codec.Default)

	report, err := runner.Run(ctx, Config{
		MatrixSize:       10,
		ConditionNumbers: []float64{10},
		MaxIterations:    300,
		Seed:             42,
	})
	require.NoError(t, err)

	// Four precisions plus one cascade run.
	require.Len(t, report.Results, 5)
	for _, res := range report.Results {
		assert.NoError(t, res.Err, "run %s", res.Name)
		assert.Positive(t, res.Iterations, "run %s", res.Name)
	}
	assert.Equal(t, 5, report.Generated())
	assert.Zero(t, report.Failed())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"fp8_cond10_n10.json",
		"fp16_cond10_n10.json",
		"fp32_cond10_n10.json",
		"fp64_cond10_n10.json",
		"cascade_cond10_n10.json",
	}, names)
}

func TestRunner_SavedDocumentsDecode(t *testing.T) {
	ctx := context.Background()
	store := newLocalStore(t)
	runner := NewRunner(store, codec.Default)

	_, err := runner.Run(ctx, Config{
		MatrixSize:       8,
		ConditionNumbers: []float64{10},
		MaxIterations:    200,
		Seed:             7,
	})
	require.NoError(t, err)

	var profile trace.ProfileDocument
	require.NoError(t, tracestore.Load(ctx, store, codec.Default, "fp64_cond10_n8.json", &profile))
	assert.Equal(t, "FP64", profile.Metadata.Precision)
	assert.Equal(t, 8, profile.Metadata.MatrixSize)
	assert.Equal(t, float64(10), profile.Metadata.ConditionNumber)
	assert.NotEmpty(t, profile.Trace)

	var doc trace.Document
	require.NoError(t, tracestore.Load(ctx, store, codec.Default, "cascade_cond10_n8.json", &doc))
	assert.Equal(t, "cascading_precision", doc.Metadata.Algorithm)
	assert.Equal(t, len(doc.Trace), doc.Summary.TotalIterations)
}

func TestRunner_SameSeedSameMatrices(t *testing.T) {
	ctx := context.Background()

	run := func() trace.Document {
		store := newLocalStore(t)
		runner := NewRunner(store, codec.Default)
		_, err := runner.Run(ctx, Config{
			MatrixSize:       8,
			ConditionNumbers: []float64{100},
			MaxIterations:    200,
			Seed:             3,
		})
		require.NoError(t, err)

		var doc trace.Document
		require.NoError(t, tracestore.Load(ctx, store, codec.Default, "cascade_cond100_n8.json", &doc))
		return doc
	}

	a, b := run(), run()
	require.Equal(t, len(a.Trace), len(b.Trace))
	for i := range a.Trace {
		assert.Equal(t, a.Trace[i].Eigenvalue, b.Trace[i].Eigenvalue)
	}
}

func TestRunner_MultipleConditionNumbers(t *testing.T) {
	ctx := context.Background()
	store := newLocalStore(t)
	runner := NewRunner(store, codec.Default)

	report, err := runner.Run(ctx, Config{
		MatrixSize:       6,
		ConditionNumbers: []float64{10, 100},
		MaxIterations:    150,
		Seed:             5,
		Concurrency:      2,
	})
	require.NoError(t, err)
	assert.Len(t, report.Results, 10)

	names, err := store.List(ctx, "cascade")
	require.NoError(t, err)
	assert.Equal(t, []string{"cascade_cond100_n6.json", "cascade_cond10_n6.json"}, names)
}

func TestRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(newLocalStore(t), codec.Default)
	_, err := runner.Run(ctx, Config{
		MatrixSize:       6,
		ConditionNumbers: []float64{10},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.defaults()

	assert.Equal(t, 50, cfg.MatrixSize)
	assert.Equal(t, []float64{10, 100, 1000}, cfg.ConditionNumbers)
	assert.Equal(t, 500, cfg.MaxIterations)
	assert.Equal(t, 1e-10, cfg.TargetError)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, 4, cfg.Concurrency)
}
