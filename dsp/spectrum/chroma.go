package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// NumPitchClasses is the chroma dimension, C through B.
const NumPitchClasses = 12

const (
	chromaCentreOctave = 5.0
	chromaOctaveWidth  = 2.0
	// Octave positions count from A0.
	chromaRefHz = 440.0 / 16
)

// ChromaFilterBank builds a 12 x (nFFT/2+1) matrix mapping spectral bins to
// pitch classes, assuming standard A440 tuning. Each bin spreads over the
// neighbouring pitch classes with a Gaussian whose width follows the bin
// spacing; every bin column has unit L2 norm before a Gaussian octave
// weighting centred on octave 5 (two octaves wide) is applied. Row 0 is C.
//
// The reference is fixed at A4 = 440 Hz with no tuning offset. librosa's
// chroma_stft estimates a tuning deviation from the signal first, so
// recordings that are not tuned to A440 give different chroma here.
func ChromaFilterBank(sampleRate float64, nFFT int) (*mat.Dense, error) {
	if sampleRate <= 0 || nFFT < 4 {
		return nil, fmt.Errorf("chroma bank sr=%v nFFT=%d: %w", sampleRate, nFFT, core.ErrInvalidParameter)
	}

	// Fractional pitch-class position of every full-spectrum bin. DC has no
	// pitch; place it 1.5 octaves below bin 1.
	pos := make([]float64, nFFT)
	for k := 1; k < nFFT; k++ {
		f := float64(k) * sampleRate / float64(nFFT)
		pos[k] = NumPitchClasses * math.Log2(f/chromaRefHz)
	}
	pos[0] = pos[1] - 1.5*NumPitchClasses

	width := make([]float64, nFFT)
	for k := 0; k < nFFT-1; k++ {
		width[k] = math.Max(pos[k+1]-pos[k], 1)
	}
	width[nFFT-1] = 1

	bins := nFFT/2 + 1
	half := float64(NumPitchClasses / 2)
	weights := make([]float64, NumPitchClasses)

	bank := mat.NewDense(NumPitchClasses, bins, nil)
	for k := range bins {
		var norm float64
		for c := range NumPitchClasses {
			d := wrap(pos[k]-float64(c)+half, NumPitchClasses) - half
			w := math.Exp(-0.5 * math.Pow(2*d/width[k], 2))
			weights[c] = w
			norm += w * w
		}

		norm = math.Sqrt(norm)
		octave := math.Exp(-0.5 * math.Pow((pos[k]/NumPitchClasses-chromaCentreOctave)/chromaOctaveWidth, 2))

		// The raw layout starts at A; rotate so row 0 is C.
		for c := range NumPitchClasses {
			w := weights[(c+3)%NumPitchClasses]
			if norm > 0 {
				w /= norm
			}

			bank.Set(c, k, w*octave)
		}
	}

	return bank, nil
}

// Chroma projects a power spectrogram onto the 12 pitch classes and scales
// each frame so its strongest class is 1. Silent frames stay zero.
func Chroma(power [][]float64, sampleRate float64, nFFT int) ([][]float64, error) {
	spec, err := frameMatrix(power, nFFT/2+1)
	if err != nil {
		return nil, err
	}

	bank, err := ChromaFilterBank(sampleRate, nFFT)
	if err != nil {
		return nil, err
	}

	var raw mat.Dense
	raw.Mul(spec, bank.T())

	out := rows(&raw)
	for _, frame := range out {
		peak := core.PeakAbs(frame)
		if peak < tiny {
			continue
		}

		for i := range frame {
			frame[i] /= peak
		}
	}

	return out, nil
}

// wrap reduces x into [0, period).
func wrap(x, period float64) float64 {
	r := math.Mod(x, period)
	if r < 0 {
		r += period
	}

	return r
}

// tiny is the smallest normal float64; frames whose norm falls below it are
// treated as silent.
const tiny = 0x1p-1022
