package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.5, A2: 0.2}

	input := []float64{1, -0.5, 0.25, 0, 0.75, -1, 0.3}
	ref := NewSection(c)
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	s := NewSection(c)
	got := append([]float64(nil), input...)
	s.ProcessBlock(got)

	for i := range got {
		if !almostEqual(got[i], want[i], eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if s.State() != ref.State() {
		t.Fatalf("state mismatch: %v vs %v", s.State(), ref.State())
	}
}

func TestSteadyStateHasNoTransient(t *testing.T) {
	c := Coefficients{B0: 0.0675, B1: 0.135, B2: 0.0675, A1: -1.143, A2: 0.4128}

	g, ok := c.DCGain()
	if !ok {
		t.Fatal("DCGain reported no finite gain")
	}

	st, ok := c.SteadyState(0.7)
	if !ok {
		t.Fatal("SteadyState failed")
	}

	s := NewSection(c)
	s.SetState(st)
	for i := range 16 {
		y := s.ProcessSample(0.7)
		if !almostEqual(y, 0.7*g, 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, y, 0.7*g)
		}
	}
}

func TestDCGainSingular(t *testing.T) {
	c := Coefficients{B0: 1, A1: -2, A2: 1}
	if _, ok := c.DCGain(); ok {
		t.Fatal("expected DCGain to fail for a pole at z=1")
	}
	if _, ok := c.SteadyState(1); ok {
		t.Fatal("expected SteadyState to fail for a pole at z=1")
	}
}

func TestResetClearsState(t *testing.T) {
	s := NewSection(Coefficients{B0: 1, B1: 1, A1: 0.5})
	s.ProcessSample(1)
	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatalf("state after Reset = %v", s.State())
	}
}

func TestIsStable(t *testing.T) {
	if !(&Coefficients{B0: 1, A1: -1.143, A2: 0.4128}).IsStable() {
		t.Fatal("expected stable section")
	}
	if (&Coefficients{B0: 1, A1: -2.5, A2: 1.2}).IsStable() {
		t.Fatal("expected unstable section")
	}
}

func TestChainSteadyState(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 0.0675, B1: 0.135, B2: 0.0675, A1: -1.143, A2: 0.4128},
		{B0: 0.2, B1: 0.2, A1: -0.6},
	}

	c := NewChain(coeffs)
	if !c.SetSteadyState(-0.4) {
		t.Fatal("SetSteadyState failed")
	}

	g0, _ := coeffs[0].DCGain()
	g1, _ := coeffs[1].DCGain()
	want := -0.4 * g0 * g1

	buf := []float64{-0.4, -0.4, -0.4, -0.4}
	c.ProcessBlock(buf)

	for i, y := range buf {
		if !almostEqual(y, want, 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, y, want)
		}
	}
}

func TestChainResponseIsProduct(t *testing.T) {
	a := Coefficients{B0: 0.5, B1: 0.5}
	b := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	c := NewChain([]Coefficients{a, b})

	want := a.Response(1000, 48000) * b.Response(1000, 48000)
	got := c.Response(1000, 48000)

	if !almostEqual(real(got), real(want), eps) || !almostEqual(imag(got), imag(want), eps) {
		t.Fatalf("Response = %v, want %v", got, want)
	}
	if c.NumSections() != 2 {
		t.Fatalf("NumSections = %d", c.NumSections())
	}
}
