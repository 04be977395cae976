package pipeline

import "math"

// Input defects are recovered locally with neutral defaults rather than
// propagated as failures; every stage goes through these helpers so the
// permissiveness policy is identical everywhere.

// floatOr returns *v when it is a usable number, def otherwise.
func floatOr(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return def
	}
	return *v
}

// hasFloat reports whether v carries a usable number.
func hasFloat(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// clamp constrains v to the closed range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// fractionOf normalizes a usage value that may be reported as a percentage
// (0-100) or a fraction (0-1) to the fraction form.
func fractionOf(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}
