// Package trace defines the execution-trace document model.
//
// The JSON field names are a contract: downstream analysis and dashboard
// tooling consumes persisted trace files and depends on the exact
// metadata/precision_segments/trace/summary schema. Treat any change as
// a breaking one.
package trace

// Record captures one power-iteration step. Records are immutable once
// appended: the trace is append-only.
type Record struct {
	// Iteration is the step index within the tier segment that
	// produced the record, starting at zero for each segment.
	Iteration int `json:"iteration"`
	// Precision is the tier name, e.g. "FP16".
	Precision string `json:"precision"`
	// WallTime is the duration of this step in seconds.
	WallTime float64 `json:"wall_time"`
	// CumulativeTime is seconds elapsed since the run started,
	// including all earlier segments.
	CumulativeTime float64 `json:"cumulative_time"`
	// Eigenvalue is the Rayleigh-quotient estimate after this step.
	Eigenvalue float64 `json:"eigenvalue"`
	// RelativeError is |estimate − true| / |true|.
	RelativeError float64 `json:"relative_error"`
	// ResidualNorm is ‖A·x − λ·x‖ for the current iterate.
	ResidualNorm float64 `json:"residual_norm"`
	// VectorNorm is the 2-norm of the product vector before
	// normalization.
	VectorNorm float64 `json:"vector_norm"`
	// TheoreticalFLOPS is ops_count divided by wall time; zero when the
	// measured duration is zero.
	TheoreticalFLOPS float64 `json:"theoretical_flops"`
	// TheoreticalBandwidthGBps is bytes_transferred over wall time in
	// GB/s; zero when the measured duration is zero.
	TheoreticalBandwidthGBps float64 `json:"theoretical_bandwidth_gbps"`
	// OpsCount is the theoretical operation count per step: 2n²+n.
	OpsCount int64 `json:"ops_count"`
	// BytesTransferred is the theoretical traffic per step:
	// (n²+2n)·elementSize.
	BytesTransferred int64 `json:"bytes_transferred"`
}

// Segment describes one precision tier actually executed during a
// cascade run. It is created when the tier produces its first record and
// sealed when the tier ends.
type Segment struct {
	Precision      string  `json:"precision"`
	DType          string  `json:"dtype"`
	DTypeBytes     int     `json:"dtype_bytes"`
	Iterations     int     `json:"iterations"`
	StartIteration int     `json:"start_iteration"`
	EndIteration   int     `json:"end_iteration"`
	StartError     float64 `json:"start_error"`
	EndError       float64 `json:"end_error"`
	Time           float64 `json:"time"`
	Converged      bool    `json:"converged"`
}

// Metadata describes the problem and outcome of a cascade run.
type Metadata struct {
	Algorithm       string  `json:"algorithm"`
	ConditionNumber float64 `json:"condition_number"`
	MatrixSize      int     `json:"matrix_size"`
	TrueEigenvalue  float64 `json:"true_eigenvalue"`
	Timestamp       string  `json:"timestamp"`
	TargetError     float64 `json:"target_error"`
	FinalError      float64 `json:"final_error"`
	Converged       bool    `json:"converged"`
	MaxIterations   int     `json:"max_iterations"`
}

// Summary aggregates a full trace.
type Summary struct {
	TotalIterations         int     `json:"total_iterations"`
	TotalTimeSeconds        float64 `json:"total_time_seconds"`
	PrecisionLevelsUsed     int     `json:"precision_levels_used"`
	AverageTimePerIteration float64 `json:"average_time_per_iteration"`
	AvgFLOPS                float64 `json:"avg_flops"`
	PeakFLOPS               float64 `json:"peak_flops"`
	AvgBandwidthGBps        float64 `json:"avg_bandwidth_gbps"`
	PeakBandwidthGBps       float64 `json:"peak_bandwidth_gbps"`
	TotalOps                int64   `json:"total_ops"`
	TotalBytes              int64   `json:"total_bytes"`
}

// Document is the complete trace of one cascade run. It is fully
// populated before being handed to persistence and never mutated
// afterwards.
type Document struct {
	Metadata          Metadata  `json:"metadata"`
	PrecisionSegments []Segment `json:"precision_segments"`
	Trace             []Record  `json:"trace"`
	Summary           Summary   `json:"summary"`
}

// ProfileMetadata describes a single-precision instrumented run.
type ProfileMetadata struct {
	Precision            string   `json:"precision"`
	DType                string   `json:"dtype"`
	DTypeBytes           int      `json:"dtype_bytes"`
	ConditionNumber      float64  `json:"condition_number"`
	MatrixSize           int      `json:"matrix_size"`
	TrueEigenvalue       float64  `json:"true_eigenvalue"`
	Timestamp            string   `json:"timestamp"`
	Converged            bool     `json:"converged"`
	ConvergenceIteration *int     `json:"convergence_iteration"`
	FinalError           float64  `json:"final_error"`
	Tolerance            float64  `json:"tolerance"`
	MaxIterations        int      `json:"max_iterations"`
	IEEE754Threshold     *float64 `json:"ieee754_threshold"`
	ThresholdReached     bool     `json:"threshold_reached"`
	ThresholdIteration   *int     `json:"threshold_iteration"`
}

// ProfileSummary aggregates a single-precision run, including
// time-to-error milestones used by the dashboard.
type ProfileSummary struct {
	TotalIterations   int      `json:"total_iterations"`
	TotalTimeSeconds  float64  `json:"total_time_seconds"`
	TimeTo1e3Error    *float64 `json:"time_to_1e3_error"`
	TimeTo1e6Error    *float64 `json:"time_to_1e6_error"`
	TimeTo1e9Error    *float64 `json:"time_to_1e9_error"`
	AvgFLOPS          float64  `json:"avg_flops"`
	PeakFLOPS         float64  `json:"peak_flops"`
	AvgBandwidthGBps  float64  `json:"avg_bandwidth_gbps"`
	PeakBandwidthGBps float64  `json:"peak_bandwidth_gbps"`
	TotalOps          int64    `json:"total_ops"`
	TotalBytes        int64    `json:"total_bytes"`
}

// ProfileDocument is the complete trace of one single-precision run.
type ProfileDocument struct {
	Metadata ProfileMetadata `json:"metadata"`
	Trace    []Record        `json:"trace"`
	Summary  ProfileSummary  `json:"summary"`
}
