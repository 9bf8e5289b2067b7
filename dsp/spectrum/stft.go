package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/dsp/window"
)

// STFTConfig controls framing. Feature values depend on every field, so
// callers pass it explicitly; DefaultSTFTConfig gives the standard setup.
type STFTConfig struct {
	FrameSize int // FFT length, power of two
	HopSize   int
	Window    window.Type
	// Center zero-pads FrameSize/2 samples on both ends so frame t is
	// centred on sample t*HopSize.
	Center bool
}

// DefaultSTFTConfig returns a 2048-sample periodic Hann frame with a hop of
// 512 samples, centred.
func DefaultSTFTConfig() STFTConfig {
	return STFTConfig{
		FrameSize: 2048,
		HopSize:   512,
		Window:    window.TypeHann,
		Center:    true,
	}
}

// Validate checks the framing parameters.
func (c STFTConfig) Validate() error {
	if c.FrameSize < 4 || c.FrameSize&(c.FrameSize-1) != 0 {
		return fmt.Errorf("stft frame size %d must be a power of two >= 4: %w", c.FrameSize, core.ErrInvalidParameter)
	}

	if c.HopSize <= 0 || c.HopSize > c.FrameSize {
		return fmt.Errorf("stft hop size %d must be in [1, %d]: %w", c.HopSize, c.FrameSize, core.ErrInvalidParameter)
	}

	return nil
}

// NumBins returns the one-sided bin count, FrameSize/2+1.
func (c STFTConfig) NumBins() int {
	return c.FrameSize/2 + 1
}

// NumFrames returns how many frames a signal of n samples yields.
func (c STFTConfig) NumFrames(n int) int {
	if n <= 0 || c.HopSize <= 0 {
		return 0
	}

	if c.Center {
		n += 2 * (c.FrameSize / 2)
	}

	if n < c.FrameSize {
		return 0
	}

	return 1 + (n-c.FrameSize)/c.HopSize
}

// STFT returns the one-sided short-time spectrum of x, one slice of
// NumBins bins per frame. An empty signal fails with core.ErrEmptyBuffer;
// an uncentred signal shorter than one frame fails with
// core.ErrInvalidParameter.
func STFT(x []float64, cfg STFTConfig) ([][]complex128, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(x) == 0 {
		return nil, fmt.Errorf("stft of empty signal: %w", core.ErrEmptyBuffer)
	}

	frames := cfg.NumFrames(len(x))
	if frames == 0 {
		return nil, fmt.Errorf("stft: %d samples shorter than frame %d: %w", len(x), cfg.FrameSize, core.ErrInvalidParameter)
	}

	plan, err := algofft.NewPlan64(cfg.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	padded := x
	if cfg.Center {
		half := cfg.FrameSize / 2
		padded = make([]float64, len(x)+2*half)
		copy(padded[half:], x)
	}

	coeffs := window.Generate(cfg.Window, cfg.FrameSize, window.WithPeriodic())

	scratch := scratchPool.Get(cfg.FrameSize)
	defer scratchPool.Put(scratch)

	windowed := scratch.Samples()
	timeFrame := make([]complex128, cfg.FrameSize)
	spectrum := make([]complex128, cfg.FrameSize)
	bins := cfg.NumBins()

	out := make([][]complex128, frames)
	for t := range out {
		start := t * cfg.HopSize
		if err := window.ApplyCoefficients(windowed, padded[start:start+cfg.FrameSize], coeffs); err != nil {
			return nil, err
		}

		for i, v := range windowed {
			timeFrame[i] = complex(v, 0)
		}

		if err := plan.Forward(spectrum, timeFrame); err != nil {
			return nil, fmt.Errorf("stft frame %d: %w", t, err)
		}

		out[t] = append([]complex128(nil), spectrum[:bins]...)
	}

	return out, nil
}
