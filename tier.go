package cascade

import (
	"github.com/precisionlens/cascade/quantize"
)

// Tier describes one precision level of the cascade: its numeric format
// and the empirically calibrated tolerances that govern when the tier is
// done or exhausted.
//
// The tolerance constants are configuration data, not tuning knobs:
// downstream behavior (which tiers a run visits, segment boundaries in
// traces) depends on them.
type Tier struct {
	// Name is the tier label recorded in traces, e.g. "FP16".
	Name string
	// Format is the numeric format the tier computes in.
	Format quantize.Format
	// Threshold is the relative error at which this tier's precision is
	// considered spent.
	Threshold float64
	// MaxStagnant is the number of consecutive iterations without
	// residual improvement before the tier escalates.
	MaxStagnant int
	// EigenvalueTol bounds the relative eigenvalue change for the
	// convergence test.
	EigenvalueTol float64
	// ResidualTol bounds the residual norm for the convergence test.
	ResidualTol float64
}

// DefaultTiers returns the canonical cascade, ordered from cheapest to
// most precise. Tolerances follow IEEE-754 precision limits and
// mixed-precision practice: strictly tightening down the list.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Name:          "FP8",
			Format:        quantize.EmulatedFP8,
			Threshold:     5e-2,
			MaxStagnant:   10,
			EigenvalueTol: 5e-2,
			ResidualTol:   1e-1,
		},
		{
			Name:          "FP16",
			Format:        quantize.Binary16,
			Threshold:     1e-3,
			MaxStagnant:   20,
			EigenvalueTol: 1e-3,
			ResidualTol:   1e-2,
		},
		{
			Name:          "FP32",
			Format:        quantize.Binary32,
			Threshold:     1e-7,
			MaxStagnant:   50,
			EigenvalueTol: 1e-6,
			ResidualTol:   1e-5,
		},
		{
			Name:          "FP64",
			Format:        quantize.Binary64,
			Threshold:     1e-15,
			MaxStagnant:   100,
			EigenvalueTol: 1e-12,
			ResidualTol:   1e-11,
		},
	}
}

// TierByName returns the default tier with the given name.
func TierByName(name string) (Tier, bool) {
	for _, t := range DefaultTiers() {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}
