package analysis

import "math"

const (
	// MinSamples is the fewest complete pairs a coefficient is computed from.
	MinSamples = 2
	// ZeroVarianceFallback is reported for correlation and regression
	// coefficients when fewer than MinSamples pairs remain or a variable has
	// no spread. It covers both "no information" and "undefined".
	ZeroVarianceFallback = 0.0
	// ConstantResponseR2 is reported as R² when every y value is identical
	// and the total sum of squares is zero.
	ConstantResponseR2 = 0.0
)

// completePairs keeps index pairs where both values are present. Inputs of
// different length are truncated to the shorter one.
func completePairs(xs, ys []float64) (px, py []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	px = make([]float64, 0, n)
	py = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	return px, py
}

// finite returns the values of vals that are neither NaN nor ±Inf, in order.
func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// constant reports whether vals has no spread. Comparing values directly
// avoids trusting a sum of squares that rounding left slightly above zero.
func constant(vals []float64) bool {
	if len(vals) < 2 {
		return true
	}
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteOr replaces NaN and ±Inf with fallback.
func finiteOr(v, fallback float64) float64 {
	if !isFinite(v) {
		return fallback
	}
	return v
}
