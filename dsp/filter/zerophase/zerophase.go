package zerophase

import (
	"fmt"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiokit/dsp/filter/design"
)

// ApplySections runs the biquad cascade over x forward and backward and
// returns a new slice of len(x) samples. x is not modified.
//
// Non-finite output fails with core.ErrNumericOverflow.
func ApplySections(x []float64, sections []biquad.Coefficients) ([]float64, error) {
	if len(sections) == 0 || len(x) == 0 {
		return append([]float64(nil), x...), nil
	}

	padlen := padLength(3*(2*len(sections)+1), len(x))
	ext := oddExtend(x, padlen)
	chain := biquad.NewChain(sections)

	for pass := range 2 {
		chain.Reset()
		if !chain.SetSteadyState(ext[0]) {
			return nil, fmt.Errorf("pass %d: cascade has no finite DC gain: %w", pass, core.ErrNumericOverflow)
		}

		chain.ProcessBlock(ext)
		reverse(ext)
	}

	return trim(ext, padlen, len(x))
}

// ApplyZeroPhase runs the direct-form filter b/a over x forward and backward.
// a[0] must be non-zero; both polynomials are normalized by it.
func ApplyZeroPhase(x, b, a []float64) ([]float64, error) {
	b, a, err := normalizePolys(b, a)
	if err != nil {
		return nil, err
	}

	if len(x) == 0 {
		return []float64{}, nil
	}

	zi, err := steadyState(b, a)
	if err != nil {
		return nil, err
	}

	padlen := padLength(3*len(a), len(x))
	ext := oddExtend(x, padlen)
	state := make([]float64, len(zi))

	for range 2 {
		for i := range zi {
			state[i] = zi[i] * ext[0]
		}

		lfilter(b, a, ext, state)
		reverse(ext)
	}

	return trim(ext, padlen, len(x))
}

// Apply runs a designed filter over every channel of buf. Either all
// channels are replaced or, on error, none is.
func Apply(buf *buffer.Buffer, f *design.Filter) error {
	if f == nil {
		return fmt.Errorf("nil filter: %w", core.ErrInvalidFilterSpec)
	}

	if f.SampleRate != buf.SampleRate() {
		return fmt.Errorf("filter designed for %d Hz, buffer is %d Hz: %w",
			f.SampleRate, buf.SampleRate(), core.ErrInvalidFilterSpec)
	}

	return applyChannels(buf, func(x []float64) ([]float64, error) {
		return ApplySections(x, f.Sections)
	})
}

// ApplyTransferFunction is Apply for raw b/a polynomials.
func ApplyTransferFunction(buf *buffer.Buffer, b, a []float64) error {
	return applyChannels(buf, func(x []float64) ([]float64, error) {
		return ApplyZeroPhase(x, b, a)
	})
}

func applyChannels(buf *buffer.Buffer, fn func([]float64) ([]float64, error)) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	out := make([][]float64, buf.NumChannels())
	for ch := range out {
		y, err := fn(buf.Samples(ch))
		if err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}

		out[ch] = y
	}

	return buf.Replace(out)
}

func padLength(want, n int) int {
	if want > n-1 {
		want = n - 1
	}

	if want < 0 {
		return 0
	}

	return want
}

// oddExtend reflects x about its end points by padlen samples on each side.
func oddExtend(x []float64, padlen int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*padlen)

	first, last := x[0], x[n-1]
	for i := range padlen {
		ext[i] = 2*first - x[padlen-i]
		ext[padlen+n+i] = 2*last - x[n-2-i]
	}

	copy(ext[padlen:], x)

	return ext
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

func trim(ext []float64, padlen, n int) ([]float64, error) {
	out := make([]float64, n)
	copy(out, ext[padlen:padlen+n])

	if idx, ok := core.AllFinite(out); !ok {
		return nil, fmt.Errorf("non-finite sample at %d: %w", idx, core.ErrNumericOverflow)
	}

	return out, nil
}
