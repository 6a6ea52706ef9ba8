// Package salary turns partial salary ranges into single-number estimates.
package salary

const (
	// lowerOnlyFactor scales a lone lower bound up.
	lowerOnlyFactor = 1.2
	// upperOnlyFactor scales a lone upper bound down.
	upperOnlyFactor = 0.8
)

// present reports whether a bound was actually given. Providers send zero
// for missing bounds as often as they send null.
func present(v *float64) bool {
	return v != nil && *v > 0
}

// Estimate predicts a salary from a range where either end may be missing.
// It returns false when neither bound is present.
func Estimate(from, to *float64) (float64, bool) {
	hasFrom, hasTo := present(from), present(to)

	switch {
	case hasFrom && hasTo:
		return (*from + *to) / 2, true
	case hasFrom:
		return *from * lowerOnlyFactor, true
	case hasTo:
		return *to * upperOnlyFactor, true
	default:
		return 0, false
	}
}

// Truncate converts an estimate to whole currency units, dropping the fraction.
func Truncate(v float64) int {
	return int(v)
}

// Mean returns the truncated arithmetic mean of values.
// It returns false for an empty slice.
func Mean(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}

	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return int(sum / int64(len(values))), true
}
