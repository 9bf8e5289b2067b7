package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// MFCCConfig controls cepstral analysis.
type MFCCConfig struct {
	NumCoeffs int
	NumMels   int
	FMin      float64
	FMax      float64 // 0 selects Nyquist
	// TopDB clips the log-mel spectrogram to TopDB below its global peak.
	// Zero disables clipping.
	TopDB float64
	// AMin floors power before the log so silence stays finite.
	AMin float64
}

// DefaultMFCCConfig returns 13 coefficients over 128 Slaney mel bands with
// an 80 dB dynamic range.
func DefaultMFCCConfig() MFCCConfig {
	return MFCCConfig{
		NumCoeffs: 13,
		NumMels:   128,
		TopDB:     80,
		AMin:      1e-10,
	}
}

// Validate checks the coefficient and band counts.
func (c MFCCConfig) Validate() error {
	if c.NumMels < 1 || c.NumCoeffs < 1 || c.NumCoeffs > c.NumMels {
		return fmt.Errorf("mfcc %d coefficients from %d mel bands: %w", c.NumCoeffs, c.NumMels, core.ErrInvalidParameter)
	}

	if c.TopDB < 0 || c.AMin <= 0 {
		return fmt.Errorf("mfcc topDB=%v amin=%v: %w", c.TopDB, c.AMin, core.ErrInvalidParameter)
	}

	return nil
}

// MFCC computes cepstral coefficients from a power spectrogram produced
// with an nFFT-point STFT. The result is frame-major, NumCoeffs per frame.
func MFCC(power [][]float64, sampleRate float64, nFFT int, cfg MFCCConfig) ([][]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spec, err := frameMatrix(power, nFFT/2+1)
	if err != nil {
		return nil, err
	}

	bank, err := MelFilterBank(sampleRate, nFFT, cfg.NumMels, cfg.FMin, cfg.FMax)
	if err != nil {
		return nil, err
	}

	var mel mat.Dense
	mel.Mul(spec, bank.T())

	powerToDB(&mel, cfg.AMin, cfg.TopDB)

	var cep mat.Dense
	cep.Mul(&mel, dctMatrix(cfg.NumCoeffs, cfg.NumMels).T())

	return rows(&cep), nil
}

// PowerToDB converts a power spectrogram to decibels relative to 1, with
// power floored at amin and, when topDB > 0, values clipped to topDB below
// the global maximum.
func PowerToDB(power [][]float64, amin, topDB float64) [][]float64 {
	if len(power) == 0 || len(power[0]) == 0 {
		return nil
	}

	m, err := frameMatrix(power, len(power[0]))
	if err != nil {
		return nil
	}

	powerToDB(m, amin, topDB)

	return rows(m)
}

func powerToDB(m *mat.Dense, amin, topDB float64) {
	m.Apply(func(_, _ int, v float64) float64 {
		return core.PowerToDB(v, 1, amin)
	}, m)

	if topDB <= 0 {
		return
	}

	floor := mat.Max(m) - topDB
	m.Apply(func(_, _ int, v float64) float64 {
		return math.Max(v, floor)
	}, m)
}

// dctMatrix returns the first n rows of the orthonormal DCT-II basis of
// size size, so that basis * x gives the DCT of column vector x.
func dctMatrix(n, size int) *mat.Dense {
	basis := mat.NewDense(n, size, nil)
	scale0 := math.Sqrt(1 / float64(size))
	scale := math.Sqrt(2 / float64(size))

	for k := range n {
		s := scale
		if k == 0 {
			s = scale0
		}

		for i := range size {
			basis.Set(k, i, s*math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(size))))
		}
	}

	return basis
}

// frameMatrix copies a frame-major spectrogram into a frames x bins matrix.
func frameMatrix(frames [][]float64, bins int) (*mat.Dense, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("spectrogram has no frames: %w", core.ErrEmptyBuffer)
	}

	m := mat.NewDense(len(frames), bins, nil)
	for t, f := range frames {
		if len(f) != bins {
			return nil, fmt.Errorf("frame %d has %d bins, want %d: %w", t, len(f), bins, core.ErrInvalidParameter)
		}

		m.SetRow(t, f)
	}

	return m, nil
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()

	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}

	return out
}
