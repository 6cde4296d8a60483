// Package analysis implements the per-match analytical pipeline: feature
// extraction, timeline-derived territorial metrics, and cross-match lane
// lead aggregation.
package analysis

import "math"

// SafeRatio returns num/den, or 0 when the denominator is not positive.
func SafeRatio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// CappedPercent returns num/den*100 capped at 100. A zero or negative
// denominator yields 0, never a division error.
func CappedPercent(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return math.Min(100, num/den*100)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// WeightedMean returns the weight-normalized mean of values. Zero total
// weight yields 0.
func WeightedMean(values, weights []float64) float64 {
	sum := 0.0
	total := 0.0
	for i, v := range values {
		sum += v * weights[i]
		total += weights[i]
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// CoefficientOfVariation returns stddev/mean, or 0 when the mean is 0.
func CoefficientOfVariation(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 {
		return 0
	}
	return StdDev(values) / math.Abs(mean)
}
