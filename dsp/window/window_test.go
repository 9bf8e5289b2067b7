package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}

			// Symmetric form mirrors around the centre.
			for i := range w {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
				}
			}
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil for zero length, got %v", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 0 {
		t.Fatalf("length-1 hann = %v", w)
	}
}

func TestPeriodicHann(t *testing.T) {
	const n = 2048

	w := Generate(TypeHann, n, WithPeriodic())
	if w[0] != 0 {
		t.Fatalf("w[0] = %v, want 0", w[0])
	}
	if math.Abs(w[n/2]-1) > 1e-12 {
		t.Fatalf("w[n/2] = %v, want 1", w[n/2])
	}
	// Periodic Hann is the first n points of a symmetric window of n+1.
	sym := Generate(TypeHann, n+1)
	for i := range w {
		if math.Abs(w[i]-sym[i]) > 1e-12 {
			t.Fatalf("index %d: periodic %v, symmetric(n+1) %v", i, w[i], sym[i])
		}
	}
}

func TestHammingEndpoints(t *testing.T) {
	w := Generate(TypeHamming, 9)
	if math.Abs(w[0]-0.08) > 1e-12 || math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("hamming endpoints = %v, centre = %v", w[0], w[4])
	}
}

func TestApplyCoefficients(t *testing.T) {
	dst := make([]float64, 4)
	if err := ApplyCoefficients(dst, []float64{2, 2, 2, 2}, []float64{0, 0.5, 1, 0.5}); err != nil {
		t.Fatalf("ApplyCoefficients: %v", err)
	}
	want := []float64{0, 1, 2, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	if err := ApplyCoefficients(dst, []float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestEquivalentNoiseBandwidth(t *testing.T) {
	enbw, err := EquivalentNoiseBandwidth(Generate(TypeHann, 4096, WithPeriodic()))
	if err != nil {
		t.Fatalf("ENBW: %v", err)
	}
	if math.Abs(enbw-1.5) > 1e-3 {
		t.Fatalf("hann ENBW = %v, want 1.5", enbw)
	}

	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
	if _, err := EquivalentNoiseBandwidth([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero coherent gain")
	}
}

func TestCoherentGain(t *testing.T) {
	if g := CoherentGain(Generate(TypeHann, 1024, WithPeriodic())); math.Abs(g-0.5) > 1e-12 {
		t.Fatalf("hann coherent gain = %v, want 0.5", g)
	}
}

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"hann":     TypeHann,
		" Hamming": TypeHamming,
		"BLACKMAN": TypeBlackman,
		"boxcar":   TypeRectangular,
	}
	for in, want := range cases {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Fatalf("ParseType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unsupported window")
	}
}
