package trace

// Throughput aggregates FLOP-rate and bandwidth statistics over a set of
// records. Zero-rate records (duration measured as zero) are excluded
// from averages and peaks, matching the "rate unknown" convention.
type Throughput struct {
	AvgFLOPS          float64
	PeakFLOPS         float64
	AvgBandwidthGBps  float64
	PeakBandwidthGBps float64
	TotalOps          int64
	TotalBytes        int64
}

// ComputeThroughput scans records once and returns the aggregate.
func ComputeThroughput(records []Record) Throughput {
	var tp Throughput
	var flopsN, bwN int

	for _, r := range records {
		tp.TotalOps += r.OpsCount
		tp.TotalBytes += r.BytesTransferred

		if r.TheoreticalFLOPS > 0 {
			tp.AvgFLOPS += r.TheoreticalFLOPS
			flopsN++
			if r.TheoreticalFLOPS > tp.PeakFLOPS {
				tp.PeakFLOPS = r.TheoreticalFLOPS
			}
		}
		if r.TheoreticalBandwidthGBps > 0 {
			tp.AvgBandwidthGBps += r.TheoreticalBandwidthGBps
			bwN++
			if r.TheoreticalBandwidthGBps > tp.PeakBandwidthGBps {
				tp.PeakBandwidthGBps = r.TheoreticalBandwidthGBps
			}
		}
	}

	if flopsN > 0 {
		tp.AvgFLOPS /= float64(flopsN)
	}
	if bwN > 0 {
		tp.AvgBandwidthGBps /= float64(bwN)
	}

	return tp
}

// TimeToError returns the cumulative time at which the relative error
// first dropped to the threshold, or nil if it never did.
func TimeToError(records []Record, threshold float64) *float64 {
	for _, r := range records {
		if r.RelativeError <= threshold {
			t := r.CumulativeTime
			return &t
		}
	}
	return nil
}
