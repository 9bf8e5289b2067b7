package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/stats/frequency"
)

// AnalysisConfig bundles the settings of every spectral feature.
type AnalysisConfig struct {
	STFT           STFTConfig
	MFCC           MFCCConfig
	RolloffPercent float64
}

// DefaultAnalysisConfig returns the standard STFT and MFCC setup with an
// 85% rolloff.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		STFT:           DefaultSTFTConfig(),
		MFCC:           DefaultMFCCConfig(),
		RolloffPercent: frequency.DefaultRolloffPercent,
	}
}

// Validate checks every nested configuration.
func (c AnalysisConfig) Validate() error {
	if err := c.STFT.Validate(); err != nil {
		return err
	}

	if err := c.MFCC.Validate(); err != nil {
		return err
	}

	if !(c.RolloffPercent > 0 && c.RolloffPercent <= 1) {
		return fmt.Errorf("rolloff percent %v: %w", c.RolloffPercent, core.ErrInvalidParameter)
	}

	return nil
}

// Analysis holds spectral features averaged over all frames.
type Analysis struct {
	Frames      int
	Centroid    float64 // Hz
	Bandwidth   float64 // Hz
	Rolloff     float64 // Hz
	MFCC        []float64
	ChromaMean  float64
	TonnetzMean float64
}

// Analyze runs the STFT once and derives every spectral feature of the
// mono signal x.
func Analyze(x []float64, sampleRate int, cfg AnalysisConfig) (Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return Analysis{}, err
	}

	if sampleRate <= 0 {
		return Analysis{}, fmt.Errorf("sample rate %d: %w", sampleRate, core.ErrInvalidBuffer)
	}

	frames, err := STFT(x, cfg.STFT)
	if err != nil {
		return Analysis{}, err
	}

	sr := float64(sampleRate)
	nFFT := cfg.STFT.FrameSize

	shape := frequency.MeanShape(MagnitudeFrames(frames), sr, cfg.RolloffPercent)
	power := PowerFrames(frames)

	mfcc, err := MFCC(power, sr, nFFT, cfg.MFCC)
	if err != nil {
		return Analysis{}, fmt.Errorf("mfcc: %w", err)
	}

	chroma, err := Chroma(power, sr, nFFT)
	if err != nil {
		return Analysis{}, fmt.Errorf("chroma: %w", err)
	}

	ton, err := Tonnetz(chroma)
	if err != nil {
		return Analysis{}, fmt.Errorf("tonnetz: %w", err)
	}

	chromaMean, err := Mean(chroma)
	if err != nil {
		return Analysis{}, err
	}

	tonnetzMean, err := Mean(ton)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Frames:      len(frames),
		Centroid:    shape.Centroid,
		Bandwidth:   shape.Bandwidth,
		Rolloff:     shape.Rolloff,
		MFCC:        ColumnMeans(mfcc),
		ChromaMean:  chromaMean,
		TonnetzMean: tonnetzMean,
	}, nil
}
