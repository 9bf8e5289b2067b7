package feature

import (
	"fmt"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/dsp/spectrum"
	timestats "github.com/cwbudde/algo-audiokit/stats/time"
)

// Config controls feature extraction. The zero-crossing rate is framed
// like the STFT.
type Config struct {
	Spectral spectrum.AnalysisConfig
}

// DefaultConfig returns the standard analysis setup: 2048-sample frames,
// 512-sample hop, periodic Hann window, 128 mel bands and 85% rolloff.
func DefaultConfig() Config {
	return Config{Spectral: spectrum.DefaultAnalysisConfig()}
}

// Validate checks the configuration. The cepstral coefficient count is
// pinned to NumMFCC so the key set stays fixed.
func (c Config) Validate() error {
	if err := c.Spectral.Validate(); err != nil {
		return err
	}

	if c.Spectral.MFCC.NumCoeffs != NumMFCC {
		return fmt.Errorf("feature vectors carry %d mfcc, config asks for %d: %w",
			NumMFCC, c.Spectral.MFCC.NumCoeffs, core.ErrInvalidParameter)
	}

	return nil
}

func (c Config) frames() timestats.FrameConfig {
	return timestats.FrameConfig{
		FrameLength: c.Spectral.STFT.FrameSize,
		HopLength:   c.Spectral.STFT.HopSize,
		Center:      c.Spectral.STFT.Center,
	}
}

// Extract computes the feature vector of buf with DefaultConfig.
func Extract(buf *buffer.Buffer) (Vector, error) {
	return ExtractWithConfig(buf, DefaultConfig())
}

// ExtractWithConfig computes the feature vector of buf. The buffer is only
// read. Zero-length channels fail with core.ErrEmptyBuffer; any non-finite
// feature fails with core.ErrNumericOverflow.
func ExtractWithConfig(buf *buffer.Buffer, cfg Config) (Vector, error) {
	if err := buf.Validate(); err != nil {
		return Vector{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Vector{}, err
	}

	if buf.Len() == 0 {
		return Vector{}, fmt.Errorf("extract features: %w", core.ErrEmptyBuffer)
	}

	mono := buf.Mono()
	if i, ok := core.AllFinite(mono); !ok {
		return Vector{}, fmt.Errorf("sample %d is %v: %w", i, mono[i], core.ErrNumericOverflow)
	}

	summary := timestats.Summarize(mono)

	analysis, err := spectrum.Analyze(mono, buf.SampleRate(), cfg.Spectral)
	if err != nil {
		return Vector{}, fmt.Errorf("spectral analysis: %w", err)
	}

	var v Vector
	v.set(KeyMean, summary.Mean)
	v.set(KeyStd, summary.Std)
	v.set(KeyMax, summary.Max)
	v.set(KeyMin, summary.Min)
	v.set(KeyZeroCrossingRate, timestats.MeanZeroCrossingRate(mono, cfg.frames()))
	v.set(KeySpectralCentroid, analysis.Centroid)
	v.set(KeySpectralBandwidth, analysis.Bandwidth)
	v.set(KeySpectralRolloff, analysis.Rolloff)
	for i, c := range analysis.MFCC {
		v.set(MFCCKey(i+1), c)
	}
	v.set(KeyChromaMean, analysis.ChromaMean)
	v.set(KeyTonnetzMean, analysis.TonnetzMean)

	for i, x := range v.values {
		if !core.IsFinite(x) {
			return Vector{}, fmt.Errorf("feature %s is %v: %w", orderedKeys[i], x, core.ErrNumericOverflow)
		}
	}

	return v, nil
}
