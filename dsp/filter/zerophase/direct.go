package zerophase

import (
	"fmt"

	"github.com/cwbudde/algo-audiokit/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// normalizePolys scales b and a by a[0] and zero-pads them to equal length.
func normalizePolys(b, a []float64) ([]float64, []float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil, fmt.Errorf("empty polynomial: %w", core.ErrInvalidFilterSpec)
	}

	if a[0] == 0 || !core.IsFinite(a[0]) {
		return nil, nil, fmt.Errorf("a[0] = %v: %w", a[0], core.ErrInvalidFilterSpec)
	}

	n := max(len(a), len(b))
	nb := make([]float64, n)
	na := make([]float64, n)

	for i, v := range b {
		nb[i] = v / a[0]
	}

	for i, v := range a {
		na[i] = v / a[0]
	}

	return nb, na, nil
}

// steadyState solves (I - A) zi = B for the DF-II-T state that a unit step
// settles into, where A is the transposed companion matrix of a.
func steadyState(b, a []float64) ([]float64, error) {
	m := len(a) - 1
	if m == 0 {
		return nil, nil
	}

	lhs := mat.NewDense(m, m, nil)
	rhs := mat.NewVecDense(m, nil)

	for i := range m {
		lhs.Set(i, i, 1)
		lhs.Set(i, 0, lhs.At(i, 0)+a[i+1])

		if i+1 < m {
			lhs.Set(i, i+1, -1)
		}

		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(lhs, rhs); err != nil {
		return nil, fmt.Errorf("initial state: %v: %w", err, core.ErrNumericOverflow)
	}

	out := make([]float64, m)
	for i := range out {
		out[i] = zi.AtVec(i)
	}

	return out, nil
}

// lfilter filters x in place with normalized b/a using Direct Form II
// Transposed, carrying state across calls.
func lfilter(b, a, x, state []float64) {
	m := len(state)

	for n, xn := range x {
		y := b[0] * xn
		if m > 0 {
			y += state[0]
		}

		for i := 0; i < m-1; i++ {
			state[i] = b[i+1]*xn + state[i+1] - a[i+1]*y
		}

		if m > 0 {
			state[m-1] = b[m]*xn - a[m]*y
		}

		x[n] = y
	}
}
