// Package frequency computes spectral shape descriptors from one-sided
// magnitude spectra.
//
// A magnitude slice covers bins 0 (DC) through Nyquist, so its length is
// FFTSize/2+1 and bin i sits at
//
//	f_i = i * sampleRate / (2 * (len(magnitude) - 1))
package frequency

import "math"

// DefaultRolloffPercent is the fraction of spectral magnitude below the
// rolloff frequency.
const DefaultRolloffPercent = 0.85

// Shape holds the descriptors of one spectrum, all in Hz except Flatness.
type Shape struct {
	Centroid  float64
	Bandwidth float64 // magnitude-weighted standard deviation around Centroid
	Rolloff   float64
	Flatness  float64 // Wiener entropy, 0..1
}

// Describe computes every descriptor of a single spectrum.
func Describe(magnitude []float64, sampleRate, rollPercent float64) Shape {
	sum := total(magnitude)
	c := centroid(magnitude, sampleRate, sum)

	return Shape{
		Centroid:  c,
		Bandwidth: bandwidth(magnitude, sampleRate, c, sum),
		Rolloff:   rolloff(magnitude, sampleRate, rollPercent, sum),
		Flatness:  flatness(magnitude),
	}
}

// MeanShape describes every frame and averages each descriptor over the
// frames. Silent frames contribute zeros, matching Describe.
func MeanShape(frames [][]float64, sampleRate, rollPercent float64) Shape {
	var acc Shape
	if len(frames) == 0 {
		return acc
	}

	for _, mag := range frames {
		s := Describe(mag, sampleRate, rollPercent)
		acc.Centroid += s.Centroid
		acc.Bandwidth += s.Bandwidth
		acc.Rolloff += s.Rolloff
		acc.Flatness += s.Flatness
	}

	n := float64(len(frames))
	acc.Centroid /= n
	acc.Bandwidth /= n
	acc.Rolloff /= n
	acc.Flatness /= n

	return acc
}

// BinFrequency returns the frequency in Hz of bin i of a spectrum with
// binCount bins.
func BinFrequency(i int, sampleRate float64, binCount int) float64 {
	if binCount < 2 {
		return 0
	}

	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Centroid returns the magnitude-weighted mean frequency:
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	return centroid(magnitude, sampleRate, total(magnitude))
}

// Bandwidth returns the magnitude-weighted standard deviation of frequency
// around the centroid.
func Bandwidth(magnitude []float64, sampleRate float64) float64 {
	sum := total(magnitude)
	return bandwidth(magnitude, sampleRate, centroid(magnitude, sampleRate, sum), sum)
}

// Rolloff returns the lowest bin frequency at which the cumulative
// magnitude reaches percent of the total.
func Rolloff(magnitude []float64, sampleRate, percent float64) float64 {
	return rolloff(magnitude, sampleRate, percent, total(magnitude))
}

// Flatness returns the spectral flatness, geometric over arithmetic mean
// of bins 1..N-1. Any zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	return flatness(magnitude)
}

func total(magnitude []float64) float64 {
	var sum float64
	for _, v := range magnitude {
		sum += v
	}

	return sum
}

func centroid(magnitude []float64, sampleRate, sum float64) float64 {
	n := len(magnitude)
	if n < 2 || sum == 0 {
		return 0
	}

	var weighted float64
	for i, v := range magnitude {
		weighted += BinFrequency(i, sampleRate, n) * v
	}

	return weighted / sum
}

func bandwidth(magnitude []float64, sampleRate, cent, sum float64) float64 {
	n := len(magnitude)
	if n < 2 || sum == 0 {
		return 0
	}

	var weighted float64
	for i, v := range magnitude {
		d := BinFrequency(i, sampleRate, n) - cent
		weighted += d * d * v
	}

	return math.Sqrt(weighted / sum)
}

func rolloff(magnitude []float64, sampleRate, percent, sum float64) float64 {
	n := len(magnitude)
	if n < 2 || sum == 0 {
		return 0
	}

	threshold := percent * sum

	var cum float64
	for i, v := range magnitude {
		cum += v
		if cum >= threshold {
			return BinFrequency(i, sampleRate, n)
		}
	}

	return BinFrequency(n-1, sampleRate, n)
}

func flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}

		sumLin += v
		sumLog += math.Log(v)
	}

	bins := float64(n - 1)

	return math.Exp(sumLog/bins) / (sumLin / bins)
}
