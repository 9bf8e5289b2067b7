package spectrum

import (
	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-vecmath"
)

var scratchPool = buffer.NewPool()

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// The real and imaginary parts are unpacked into pooled scratch space so the
// vecmath kernel can run on contiguous slices; in steady state only the
// output slice is allocated.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, s := unpack(in)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(s)

	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, s := unpack(in)
	vecmath.Power(out, re, im)
	scratchPool.Put(s)

	return out
}

// MagnitudeFrames applies Magnitude to every frame of a spectrogram.
func MagnitudeFrames(frames [][]complex128) [][]float64 {
	out := make([][]float64, len(frames))
	for t, f := range frames {
		out[t] = Magnitude(f)
	}

	return out
}

// PowerFrames applies Power to every frame of a spectrogram.
func PowerFrames(frames [][]complex128) [][]float64 {
	out := make([][]float64, len(frames))
	for t, f := range frames {
		out[t] = Power(f)
	}

	return out
}

func unpack(in []complex128) (re, im []float64, s *buffer.Scratch) {
	n := len(in)
	s = scratchPool.Get(2 * n)
	data := s.Samples()
	re, im = data[:n], data[n:]

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im, s
}
