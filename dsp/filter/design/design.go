package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/dsp/filter/biquad"
)

// Filter is a designed Butterworth filter: a cascade of second-order
// sections at a fixed sample rate.
type Filter struct {
	Spec       FilterSpec
	SampleRate int
	Sections   []biquad.Coefficients
}

// Design validates spec and computes the Butterworth cascade for sampleRate.
//
// Invalid specs fail with core.ErrInvalidFilterSpec. A cascade with a pole
// on or outside the unit circle, which can only come from floating-point
// breakdown at extreme cutoffs, fails with core.ErrNumericOverflow.
func Design(spec FilterSpec, sampleRate int) (*Filter, error) {
	if err := spec.Validate(sampleRate); err != nil {
		return nil, err
	}

	fs := float64(sampleRate)

	var sections []biquad.Coefficients

	switch spec.Kind {
	case KindLow:
		sections = ButterworthLP(spec.CutoffHz, spec.Order, fs)
	case KindHigh:
		sections = ButterworthHP(spec.CutoffHz, spec.Order, fs)
	case KindBand:
		sections = ButterworthBP(spec.CutoffHz, spec.HighCutoffHz, spec.Order, fs)
	}

	for i := range sections {
		c := sections[i]
		for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
			if !core.IsFinite(v) {
				return nil, fmt.Errorf("section %d has non-finite coefficient: %w", i, core.ErrNumericOverflow)
			}
		}

		if !c.IsStable() {
			return nil, fmt.Errorf("section %d is unstable: %w", i, core.ErrNumericOverflow)
		}
	}

	return &Filter{Spec: spec, SampleRate: sampleRate, Sections: sections}, nil
}

// Order returns the order of the digital filter, counting a first-order
// section as one and a full biquad as two.
func (f *Filter) Order() int {
	n := 0
	for _, c := range f.Sections {
		switch {
		case c.A2 != 0 || c.B2 != 0:
			n += 2
		default:
			n++
		}
	}

	return n
}

// TransferFunction expands the cascade into feedforward b and feedback a
// polynomials in z^-1, with a[0] == 1. Both have Order()+1 terms.
//
// High orders lose precision in this form; prefer the sections for filtering.
func (f *Filter) TransferFunction() (b, a []float64) {
	b = []float64{1}
	a = []float64{1}

	for _, c := range f.Sections {
		if c.A2 == 0 && c.B2 == 0 {
			b = polyMul(b, []float64{c.B0, c.B1})
			a = polyMul(a, []float64{1, c.A1})

			continue
		}

		b = polyMul(b, []float64{c.B0, c.B1, c.B2})
		a = polyMul(a, []float64{1, c.A1, c.A2})
	}

	return b, a
}

// Response returns the complex frequency response at freqHz.
func (f *Filter) Response(freqHz float64) complex128 {
	h := complex(1, 0)
	for i := range f.Sections {
		h *= f.Sections[i].Response(freqHz, float64(f.SampleRate))
	}

	return h
}

// MagnitudeDB returns the magnitude response at freqHz in dB.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz)))
}

func polyMul(p, q []float64) []float64 {
	out := make([]float64, len(p)+len(q)-1)
	for i, x := range p {
		for j, y := range q {
			out[i+j] += x * y
		}
	}

	return out
}
