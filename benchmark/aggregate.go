package benchmark

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values. The second return is false for
// an empty input: the mean of nothing is not computed, not zero.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// PercentDelta returns (baseline-candidate)/baseline*100. Positive means the
// candidate is faster or smaller than the baseline. A zero baseline makes the
// delta undefined, signalled by a false second return.
func PercentDelta(baseline, candidate float64) (float64, bool) {
	if baseline == 0 {
		return 0, false
	}
	return (baseline - candidate) / baseline * 100, true
}

// ColdWarm splits a complete probe sequence into the cold sample (index 0)
// and the mean of the warm samples, both in milliseconds. The cold sample is
// defined for any non-empty sequence; warmOK is false when the sequence holds
// no warm sample to average.
func ColdWarm(samples []LatencySample) (coldMs, warmMs float64, warmOK bool) {
	if len(samples) == 0 {
		return 0, 0, false
	}
	warm := make([]float64, 0, len(samples)-1)
	for _, s := range samples {
		ms := float64(s.Duration) / float64(time.Millisecond)
		if s.Cold() {
			coldMs = ms
			continue
		}
		warm = append(warm, ms)
	}
	warmMs, warmOK = Mean(warm)
	return coldMs, warmMs, warmOK
}

// GroupMean is the per-group mean of one numeric metric.
type GroupMean struct {
	Key   string  `json:"key"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// GroupMeansBy partitions results by the value of a categorical field (for
// example imageType) and computes the mean of a numeric field per group. Only
// targets with a defined value for both fields contribute; group order
// follows first occurrence in the result list.
func GroupMeansBy(results []*TargetResult, groupField, valueField string) []GroupMean {
	var order []string
	grouped := make(map[string][]float64)

	for _, r := range results {
		key := r.MetricLabel(groupField)
		if key == Unavailable {
			continue
		}
		v, ok := r.NumericMetric(valueField)
		if !ok {
			continue
		}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], v)
	}

	means := make([]GroupMean, 0, len(order))
	for _, key := range order {
		m, _ := Mean(grouped[key])
		means = append(means, GroupMean{Key: key, Mean: m, Count: len(grouped[key])})
	}
	return means
}

// RankByField returns the targets holding the minimum and maximum defined
// value of a numeric field. Ties break by result order, which mirrors
// registry order. ok is false when no target has a defined value.
func RankByField(results []*TargetResult, field string) (min, max *TargetResult, ok bool) {
	var minV, maxV float64
	for _, r := range results {
		v, defined := r.NumericMetric(field)
		if !defined {
			continue
		}
		if min == nil || v < minV {
			min, minV = r, v
		}
		if max == nil || v > maxV {
			max, maxV = r, v
		}
	}
	return min, max, min != nil
}
