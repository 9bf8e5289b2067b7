package core

import "math"

// PeakAbs returns max |x| over buf, or 0 for an empty slice.
func PeakAbs(buf []float64) float64 {
	var peak float64
	for _, x := range buf {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// AllFinite reports whether every element of buf is finite. The index of the
// first offending sample is returned when it is not.
func AllFinite(buf []float64) (int, bool) {
	for i, x := range buf {
		if !IsFinite(x) {
			return i, false
		}
	}

	return -1, true
}
