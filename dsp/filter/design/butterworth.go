package design

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-audiokit/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, lowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}

	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, highpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderHP(freq, sampleRate))
	}

	return sections
}

// ButterworthBP designs a bandpass Butterworth cascade between low and high
// (Hz). The prototype of the given order becomes a filter of twice that
// order, returned as order second-order sections, each with zeros at DC and
// Nyquist and unit gain at the geometric band centre.
func ButterworthBP(low, high float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || sampleRate <= 0 || low <= 0 || high <= low || high >= sampleRate/2 {
		return nil
	}

	fs2 := 2 * sampleRate
	wLow := fs2 * math.Tan(math.Pi*low/sampleRate)
	wHigh := fs2 * math.Tan(math.Pi*high/sampleRate)
	bw := wHigh - wLow
	w0 := math.Sqrt(wLow * wHigh)

	// Digital centre frequency in rad/sample.
	center := 2 * math.Atan(w0/fs2)

	sections := make([]biquad.Coefficients, 0, order)

	for k := range order {
		p := prototypePole(order, k)

		switch {
		case imag(p) > 0:
			// The conjugate prototype pole yields the conjugates of both
			// band poles, so each band pole pairs with its own conjugate.
			s1, s2 := bandPoles(p, bw, w0)
			sections = append(sections,
				bandSection(bilinearPole(s1, fs2), cmplx.Conj(bilinearPole(s1, fs2)), center),
				bandSection(bilinearPole(s2, fs2), cmplx.Conj(bilinearPole(s2, fs2)), center),
			)
		case imag(p) == 0:
			s1, s2 := bandPoles(p, bw, w0)
			sections = append(sections, bandSection(bilinearPole(s1, fs2), bilinearPole(s2, fs2), center))
		}
	}

	return sections
}

// prototypePole returns the k-th left-half-plane pole of the normalized
// analog Butterworth prototype of the given order.
func prototypePole(order, k int) complex128 {
	theta := math.Pi * float64(2*k+order+1) / float64(2*order)
	p := cmplx.Rect(1, theta)

	// The real pole of odd orders lands at exactly -1.
	if 2*k+1 == order {
		return complex(-1, 0)
	}

	return p
}

// bandPoles maps a prototype pole through s -> (s^2 + w0^2) / (bw*s).
func bandPoles(p complex128, bw, w0 float64) (complex128, complex128) {
	half := p * complex(bw/2, 0)
	root := cmplx.Sqrt(half*half - complex(w0*w0, 0))

	return half + root, half - root
}

// bilinearPole maps an analog pole to the z-plane; fs2 is twice the sample rate.
func bilinearPole(s complex128, fs2 float64) complex128 {
	k := complex(fs2, 0)
	return (k + s) / (k - s)
}

// bandSection builds a section with poles z1, z2 and zeros at z = ±1,
// scaled to unit magnitude at the centre frequency.
func bandSection(z1, z2 complex128, center float64) biquad.Coefficients {
	c := biquad.Coefficients{
		B0: 1,
		B1: 0,
		B2: -1,
		A1: -real(z1 + z2),
		A2: real(z1 * z2),
	}

	ejw := cmplx.Exp(complex(0, -center))
	num := 1 - ejw*ejw
	den := 1 + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ejw*ejw

	g := cmplx.Abs(den) / cmplx.Abs(num)
	c.B0 *= g
	c.B2 *= g

	return c
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

func lowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha)
}

func highpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad((1+cw)/2, -(1 + cw), (1+cw)/2, 1+alpha, -2*cw, 1-alpha)
}

func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return biquad.Coefficients{}
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return biquad.Coefficients{}
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
