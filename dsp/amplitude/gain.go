package amplitude

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultTargetPeak is the per-channel peak Normalize aims for when the
	// caller has no preference.
	DefaultTargetPeak = 0.8

	// ClipCeiling is the buffer peak ChangeVolume rescales to when the
	// scaled signal would exceed full scale.
	ClipCeiling = 0.98
)

// Report describes a volume change.
type Report struct {
	// Gain is the linear factor that was actually applied to every sample.
	Gain float64
	// ClipPrevented is set when the requested factor pushed the peak above
	// 1.0 and the buffer was rescaled to ClipCeiling instead.
	ClipPrevented bool
}

// Normalize scales each channel so that its own peak equals targetPeak.
// Silent channels are left untouched. A NaN or Inf sample anywhere fails
// with core.ErrNumericOverflow before any channel is scaled.
func Normalize(buf *buffer.Buffer, targetPeak float64) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	if !(targetPeak > 0) || math.IsInf(targetPeak, 0) {
		return fmt.Errorf("normalize target peak %v: %w", targetPeak, core.ErrInvalidParameter)
	}

	if err := requireFinite(buf); err != nil {
		return err
	}

	for ch := range buf.NumChannels() {
		samples := buf.Samples(ch)

		peak := core.PeakAbs(samples)
		if peak == 0 {
			continue
		}

		vecmath.ScaleBlock(samples, samples, targetPeak/peak)
	}

	return nil
}

// ChangeVolume multiplies every sample by factor. When the resulting
// buffer-wide peak exceeds 1.0 the whole buffer is rescaled so the peak
// lands on ClipCeiling; channel balance is preserved.
func ChangeVolume(buf *buffer.Buffer, factor float64) (Report, error) {
	if err := buf.Validate(); err != nil {
		return Report{}, err
	}

	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Report{}, fmt.Errorf("volume factor %v: %w", factor, core.ErrInvalidParameter)
	}

	if err := requireFinite(buf); err != nil {
		return Report{}, err
	}

	peak := buf.PeakAbsolute()

	report := Report{Gain: factor}

	scaled := peak * math.Abs(factor)
	if math.IsInf(scaled, 0) {
		return Report{}, fmt.Errorf("volume factor %v on peak %v: %w", factor, peak, core.ErrNumericOverflow)
	}

	if scaled > 1.0 {
		report.Gain = math.Copysign(ClipCeiling/peak, factor)
		report.ClipPrevented = true
	}

	for ch := range buf.NumChannels() {
		samples := buf.Samples(ch)
		vecmath.ScaleBlock(samples, samples, report.Gain)
	}

	return report, nil
}

// requireFinite rejects buffers holding NaN or Inf before any sample is
// scaled.
func requireFinite(buf *buffer.Buffer) error {
	for ch := range buf.NumChannels() {
		if i, ok := core.AllFinite(buf.Samples(ch)); !ok {
			return fmt.Errorf("channel %d sample %d is %v: %w", ch, i, buf.Samples(ch)[i], core.ErrNumericOverflow)
		}
	}

	return nil
}
