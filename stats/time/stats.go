// Package time computes time-domain statistics of a sample sequence.
package time

import "math"

// Summary holds the time-domain statistics of a signal.
type Summary struct {
	Length        int
	Mean          float64
	Variance      float64 // population variance
	Std           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|Max|, |Min|)
	RMS           float64
	ZeroCrossings int
	Skewness      float64
	Kurtosis      float64 // excess
}

// Summarize computes all statistics in a single pass, using Welford's
// update for the central moments.
func Summarize(signal []float64) Summary {
	n := len(signal)
	if n == 0 {
		return Summary{}
	}

	var mean, m2, m3, m4, sumSq float64

	s := Summary{
		Length: n,
		Max:    signal[0],
		Min:    signal[0],
	}

	for i, x := range signal {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > s.Max {
			s.Max, s.MaxPos = x, i
		}

		if x < s.Min {
			s.Min, s.MinPos = x, i
		}
	}

	nf := float64(n)
	s.Mean = mean
	s.Variance = m2 / nf
	s.Std = math.Sqrt(s.Variance)
	s.RMS = math.Sqrt(sumSq / nf)
	s.Peak = math.Max(math.Abs(s.Max), math.Abs(s.Min))
	s.ZeroCrossings = ZeroCrossings(signal)

	if s.Variance > 0 {
		s.Skewness = (m3 / nf) / (s.Variance * s.Std)
		s.Kurtosis = (m4/nf)/(s.Variance*s.Variance) - 3
	}

	return s
}

// ZeroThreshold is the magnitude at or below which a sample is treated as
// exactly zero when counting crossings.
const ZeroThreshold = 1e-10

// ZeroCrossings counts sign changes between adjacent samples. Samples with
// magnitude at or below ZeroThreshold count as positive, so a signal that
// touches zero and returns does not register a crossing.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if negative(signal[i-1]) != negative(signal[i]) {
			count++
		}
	}

	return count
}

func negative(x float64) bool {
	return x < -ZeroThreshold
}
