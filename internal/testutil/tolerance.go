package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireNearlyEqual fails t when |got-want| exceeds eps.
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > eps {
		t.Fatalf("%s = %.6g, want %.6g (eps %g)", name, got, want, eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps. The first offending index is
// reported along with how many samples were out of tolerance.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	first, bad := -1, 0
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps || math.IsNaN(got[i]) != math.IsNaN(want[i]) {
			if first < 0 {
				first = i
			}
			bad++
		}
	}
	if bad > 0 {
		t.Fatalf("%d of %d samples out of tolerance; first at %d: got %v, want %v (eps %v)",
			bad, len(got), first, got[first], want[first], eps)
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute sample difference between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	var peak float64
	for i := range a {
		peak = max(peak, math.Abs(a[i]-b[i]))
	}
	return peak, nil
}
