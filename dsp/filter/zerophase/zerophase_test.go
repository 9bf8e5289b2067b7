package zerophase

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/dsp/filter/design"
	"github.com/cwbudde/algo-audiokit/internal/testutil"
)

// toneAmplitude estimates the amplitude of the freq component of x via a
// single-bin DFT.
func toneAmplitude(x []float64, freq, rate float64) float64 {
	var acc complex128
	w := 2 * math.Pi * freq / rate
	for n, v := range x {
		acc += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(n)))
	}

	return 2 * cmplx.Abs(acc) / float64(len(x))
}

// energyAbove sums DFT power of x for bins above freq.
func energyAbove(x []float64, freq, rate float64) float64 {
	n := len(x)
	var total float64
	for k := 0; k <= n/2; k++ {
		if float64(k)*rate/float64(n) <= freq {
			continue
		}

		var acc complex128
		w := 2 * math.Pi * float64(k) / float64(n)
		for i, v := range x {
			acc += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(i)))
		}

		total += real(acc)*real(acc) + imag(acc)*imag(acc)
	}

	return total
}

func mustDesign(t *testing.T, spec design.FilterSpec, rate int) *design.Filter {
	t.Helper()

	f, err := design.Design(spec, rate)
	if err != nil {
		t.Fatal(err)
	}

	return f
}

func TestLowpassAttenuatesHighTone(t *testing.T) {
	const rate = 22050

	low := testutil.DeterministicSine(200, rate, 0.5, rate)
	high := testutil.DeterministicSine(5000, rate, 0.5, rate)
	x := make([]float64, rate)
	for i := range x {
		x[i] = low[i] + high[i]
	}

	f := mustDesign(t, design.FilterSpec{Kind: design.KindLow, CutoffHz: 1000, Order: 5}, rate)

	y, err := ApplySections(x, f.Sections)
	if err != nil {
		t.Fatal(err)
	}

	aLow := toneAmplitude(y, 200, rate)
	aHigh := toneAmplitude(y, 5000, rate)

	if ratio := 20 * math.Log10(aLow/aHigh); ratio <= 20 {
		t.Fatalf("200 Hz vs 5 kHz separation %.1f dB, want > 20 dB", ratio)
	}
	if math.Abs(aLow-0.5) > 0.01 {
		t.Fatalf("200 Hz amplitude %.4f, want ~0.5", aLow)
	}
}

func TestNoPhaseShift(t *testing.T) {
	const rate = 8000

	x := testutil.DeterministicSine(50, rate, 0.8, 4000)
	f := mustDesign(t, design.FilterSpec{Kind: design.KindLow, CutoffHz: 1500, Order: 4}, rate)

	y, err := ApplySections(x, f.Sections)
	if err != nil {
		t.Fatal(err)
	}

	diff, err := testutil.MaxAbsDiff(y[500:3500], x[500:3500])
	if err != nil {
		t.Fatal(err)
	}
	if diff > 1e-4 {
		t.Fatalf("passband output deviates from input by %g", diff)
	}
}

func TestLengthPreserved(t *testing.T) {
	f := mustDesign(t, design.FilterSpec{Kind: design.KindHigh, CutoffHz: 100, Order: 3}, 8000)

	for _, n := range []int{0, 1, 2, 5, 30, 1000} {
		x := testutil.DeterministicNoise(int64(n), 0.5, n)

		y, err := ApplySections(x, f.Sections)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(y) != n {
			t.Fatalf("n=%d: output length %d", n, len(y))
		}

		y, err = ApplyZeroPhase(x, []float64{0.5, 0.5}, []float64{1})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(y) != n {
			t.Fatalf("n=%d: FIR output length %d", n, len(y))
		}
	}
}

func TestDirectFormMatchesSections(t *testing.T) {
	const rate = 16000

	f := mustDesign(t, design.FilterSpec{Kind: design.KindLow, CutoffHz: 2000, Order: 2}, rate)
	x := testutil.DeterministicNoise(7, 0.5, 2048)

	want, err := ApplySections(x, f.Sections)
	if err != nil {
		t.Fatal(err)
	}

	b, a := f.TransferFunction()
	got, err := ApplyZeroPhase(x, b, a)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestDeterministic(t *testing.T) {
	f := mustDesign(t, design.FilterSpec{Kind: design.KindBand, CutoffHz: 300, HighCutoffHz: 3000, Order: 3}, 16000)
	x := testutil.DeterministicNoise(3, 0.9, 4096)

	a, err := ApplySections(x, f.Sections)
	if err != nil {
		t.Fatal(err)
	}

	b, err := ApplySections(x, f.Sections)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestLowThenHighDoesNotRestoreHighBand(t *testing.T) {
	const rate = 22050
	const cutoff = 10000.0

	x := testutil.DeterministicNoise(11, 0.5, 2048)

	lp := mustDesign(t, design.FilterSpec{Kind: design.KindLow, CutoffHz: cutoff, Order: 4}, rate)
	hp := mustDesign(t, design.FilterSpec{Kind: design.KindHigh, CutoffHz: cutoff, Order: 4}, rate)

	afterLP, err := ApplySections(x, lp.Sections)
	if err != nil {
		t.Fatal(err)
	}

	afterHP, err := ApplySections(afterLP, hp.Sections)
	if err != nil {
		t.Fatal(err)
	}

	e0 := energyAbove(x, cutoff, rate)
	e1 := energyAbove(afterLP, cutoff, rate)
	e2 := energyAbove(afterHP, cutoff, rate)

	if !(e1 < e0) {
		t.Fatalf("low-pass did not reduce high-band energy: %g -> %g", e0, e1)
	}
	if e2 > e1*1.01 {
		t.Fatalf("high-pass restored high-band energy: %g -> %g", e1, e2)
	}
}

func TestApplyBufferAllOrNothing(t *testing.T) {
	const rate = 8000

	good := testutil.DeterministicSine(440, rate, 0.5, 512)
	bad := testutil.DeterministicSine(440, rate, 0.5, 512)
	bad[100] = math.NaN()

	buf, err := buffer.New([][]float64{good, bad}, rate)
	if err != nil {
		t.Fatal(err)
	}

	f := mustDesign(t, design.FilterSpec{Kind: design.KindLow, CutoffHz: 1000, Order: 2}, rate)

	err = Apply(buf, f)
	if !errors.Is(err, core.ErrNumericOverflow) {
		t.Fatalf("Apply() error = %v, want ErrNumericOverflow", err)
	}

	testutil.RequireSliceNearlyEqual(t, buf.Samples(0), good, 0)
}

func TestApplyBuffer(t *testing.T) {
	const rate = 8000

	ch := testutil.DeterministicSine(3000, rate, 0.5, 2048)
	buf, err := buffer.New([][]float64{ch, ch}, rate)
	if err != nil {
		t.Fatal(err)
	}

	f := mustDesign(t, design.FilterSpec{Kind: design.KindLow, CutoffHz: 500, Order: 4}, rate)
	if err := Apply(buf, f); err != nil {
		t.Fatal(err)
	}

	if buf.Len() != 2048 || buf.SampleRate() != rate {
		t.Fatalf("buffer shape changed: len=%d rate=%d", buf.Len(), buf.SampleRate())
	}
	// Edge transients decay within the first few hundred samples.
	if peak := core.PeakAbs(buf.Samples(0)[256:1792]); peak > 0.01 {
		t.Fatalf("3 kHz tone survived a 500 Hz low-pass with peak %g", peak)
	}

	b, a := f.TransferFunction()
	if err := ApplyTransferFunction(buf, b, a); err != nil {
		t.Fatal(err)
	}
}

func TestApplyRateMismatch(t *testing.T) {
	buf, err := buffer.NewSilent(1, 100, 44100)
	if err != nil {
		t.Fatal(err)
	}

	f := mustDesign(t, design.FilterSpec{Kind: design.KindLow, CutoffHz: 1000, Order: 2}, 8000)
	if err := Apply(buf, f); !errors.Is(err, core.ErrInvalidFilterSpec) {
		t.Fatalf("Apply() error = %v, want ErrInvalidFilterSpec", err)
	}
}

func TestInvalidPolynomials(t *testing.T) {
	x := []float64{1, 2, 3}

	if _, err := ApplyZeroPhase(x, []float64{1}, []float64{0, 1}); !errors.Is(err, core.ErrInvalidFilterSpec) {
		t.Fatalf("a[0]=0 error = %v", err)
	}
	if _, err := ApplyZeroPhase(x, nil, []float64{1}); !errors.Is(err, core.ErrInvalidFilterSpec) {
		t.Fatalf("empty b error = %v", err)
	}
}

func TestUnstableFilterOverflows(t *testing.T) {
	x := testutil.DeterministicNoise(1, 0.5, 4096)

	_, err := ApplyZeroPhase(x, []float64{1}, []float64{1, -1.5})
	if !errors.Is(err, core.ErrNumericOverflow) {
		t.Fatalf("unstable filter error = %v, want ErrNumericOverflow", err)
	}
}
