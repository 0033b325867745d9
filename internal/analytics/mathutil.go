package analytics

import "math"

// clamp saturates x to [lo, hi]. NaN is mapped to lo.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp01(x float64) float64 {
	return clamp(x, 0, 1)
}

// round1 rounds to one decimal. Values too large to carry decimals are returned as is.
func round1(x float64) float64 {
	if math.Abs(x) >= 1e15 {
		return x
	}
	return math.Round(x*10) / 10
}

// finiteOr returns fallback for NaN and infinities.
func finiteOr(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}

// mean sums x/n, so large finite inputs don't overflow. A non-finite result is 0.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := float64(len(values))
	var m float64
	for _, v := range values {
		m += v / n
	}
	return finiteOr(m, 0)
}

// roundInt rounds to the nearest int, saturating at the int32 range. NaN is 0.
func roundInt(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	return int(math.Round(clamp(x, math.MinInt32, math.MaxInt32)))
}

// ratio returns num/den, or fallback when den is zero.
func ratio(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}
