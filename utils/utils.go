package utils

import (
	"math"
	"sort"
)

func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.Round(f*1000) / 1000
}

// Median returns the median of x, averaging the two middle values for an
// even count. x must not contain NaN; use NaNMedian for that. The input
// slice is not modified.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// NaNMedian is Median over the non-NaN values of x. Returns NaN when every
// value is NaN.
func NaNMedian(x []float64) float64 {
	filtered := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			filtered = append(filtered, v)
		}
	}
	return Median(filtered)
}
