package amplitude

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Fade multiplies the first fadeIn seconds of every channel by a linear
// 0→1 ramp and the last fadeOut seconds by a linear 1→0 ramp. Ramp lengths
// are truncated to whole samples. Overlapping ramps are rejected with
// core.ErrInvalidDuration.
func Fade(buf *buffer.Buffer, fadeIn, fadeOut float64) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	for _, d := range []float64{fadeIn, fadeOut} {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return fmt.Errorf("fade duration %v s: %w", d, core.ErrInvalidDuration)
		}
	}

	if fadeIn+fadeOut > buf.Duration() {
		return fmt.Errorf("fade in %v s + fade out %v s exceeds %v s: %w",
			fadeIn, fadeOut, buf.Duration(), core.ErrInvalidDuration)
	}

	rate := float64(buf.SampleRate())
	nIn := int(fadeIn * rate)
	nOut := int(fadeOut * rate)

	if nIn+nOut > buf.Len() {
		return fmt.Errorf("fade ramps of %d+%d samples exceed %d: %w",
			nIn, nOut, buf.Len(), core.ErrInvalidDuration)
	}

	rampIn := linspace(0, 1, nIn)
	rampOut := linspace(1, 0, nOut)

	for ch := range buf.NumChannels() {
		samples := buf.Samples(ch)

		if nIn > 0 {
			vecmath.MulBlockInPlace(samples[:nIn], rampIn)
		}

		if nOut > 0 {
			vecmath.MulBlockInPlace(samples[len(samples)-nOut:], rampOut)
		}
	}

	return nil
}

// linspace returns n evenly spaced values from start to stop inclusive.
// A single-point ramp holds start.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	if n > 1 {
		out[n-1] = stop
	}

	return out
}
