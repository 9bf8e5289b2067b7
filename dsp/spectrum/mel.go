package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3
	melBreakHz    = 1000.0
	melBreak      = melBreakHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

// HzToMel converts a frequency to the Slaney mel scale.
func HzToMel(hz float64) float64 {
	if hz >= melBreakHz {
		return melBreak + math.Log(hz/melBreakHz)/melLogStep
	}

	return hz / melLinearStep
}

// MelToHz is the inverse of HzToMel.
func MelToHz(mel float64) float64 {
	if mel >= melBreak {
		return melBreakHz * math.Exp(melLogStep*(mel-melBreak))
	}

	return mel * melLinearStep
}

// MelFrequencies returns n frequencies evenly spaced on the mel scale
// between fMin and fMax inclusive.
func MelFrequencies(n int, fMin, fMax float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	lo, hi := HzToMel(fMin), HzToMel(fMax)
	if n == 1 {
		out[0] = MelToHz(lo)
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = MelToHz(lo + float64(i)*step)
	}

	return out
}

// FFTFrequencies returns the centre frequency of each one-sided bin of an
// nFFT-point transform.
func FFTFrequencies(sampleRate float64, nFFT int) []float64 {
	out := make([]float64, nFFT/2+1)
	for k := range out {
		out[k] = float64(k) * sampleRate / float64(nFFT)
	}

	return out
}

// MelFilterBank builds an nMels x (nFFT/2+1) matrix of triangular filters
// whose edges are evenly spaced in mel between fMin and fMax. Each filter
// is scaled by 2/(upper-lower) so it has unit area in Hz. A non-positive
// fMax selects Nyquist.
func MelFilterBank(sampleRate float64, nFFT, nMels int, fMin, fMax float64) (*mat.Dense, error) {
	if fMax <= 0 {
		fMax = sampleRate / 2
	}

	switch {
	case sampleRate <= 0:
		return nil, fmt.Errorf("mel bank sample rate %v: %w", sampleRate, core.ErrInvalidParameter)
	case nFFT < 2 || nMels < 1:
		return nil, fmt.Errorf("mel bank nFFT=%d nMels=%d: %w", nFFT, nMels, core.ErrInvalidParameter)
	case fMin < 0 || fMin >= fMax || fMax > sampleRate/2:
		return nil, fmt.Errorf("mel bank range [%v, %v] Hz at %v Hz: %w", fMin, fMax, sampleRate, core.ErrInvalidParameter)
	}

	fftFreqs := FFTFrequencies(sampleRate, nFFT)
	edges := MelFrequencies(nMels+2, fMin, fMax)

	bank := mat.NewDense(nMels, len(fftFreqs), nil)
	for m := range nMels {
		lower, centre, upper := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (upper - lower)

		for k, f := range fftFreqs {
			rising := (f - lower) / (centre - lower)
			falling := (upper - f) / (upper - centre)

			if w := math.Min(rising, falling); w > 0 {
				bank.Set(m, k, w*norm)
			}
		}
	}

	return bank, nil
}
