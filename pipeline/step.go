package pipeline

import (
	"github.com/cwbudde/algo-audiokit/dsp/amplitude"
	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/filter/design"
	"github.com/cwbudde/algo-audiokit/dsp/filter/zerophase"
)

// Op names understood by DefaultRegistry.
const (
	OpNormalize = "normalize"
	OpFilter    = "filter"
	OpVolume    = "volume"
	OpFade      = "fade"
	OpTrim      = "trim"
)

// Step is one in-place transform. Apply either updates buf and reports
// what happened, or returns an error and leaves buf unchanged.
type Step interface {
	Name() string
	Apply(buf *buffer.Buffer) (StepResult, error)
}

// StepResult carries the non-fatal outcome of a step.
type StepResult struct {
	// Gain is the linear gain a volume step applied.
	Gain float64 `json:"gain,omitempty"`
	// ClipPrevented reports that a volume step rescaled the buffer.
	ClipPrevented bool `json:"clipPrevented,omitempty"`
	// SilentChannels lists channels a trim step found silent.
	SilentChannels []int `json:"silentChannels,omitempty"`
	// Removed is the number of samples per channel a trim step cut.
	Removed int `json:"removed,omitempty"`
}

// NormalizeStep scales every channel to TargetPeak.
type NormalizeStep struct {
	TargetPeak float64
}

func (s NormalizeStep) Name() string { return OpNormalize }

func (s NormalizeStep) Apply(buf *buffer.Buffer) (StepResult, error) {
	return StepResult{}, amplitude.Normalize(buf, s.TargetPeak)
}

// FilterStep designs a Butterworth filter for the buffer's sample rate and
// applies it forward and backward.
type FilterStep struct {
	Spec design.FilterSpec
}

func (s FilterStep) Name() string { return OpFilter }

func (s FilterStep) Apply(buf *buffer.Buffer) (StepResult, error) {
	if err := buf.Validate(); err != nil {
		return StepResult{}, err
	}

	f, err := design.Design(s.Spec, buf.SampleRate())
	if err != nil {
		return StepResult{}, err
	}

	return StepResult{}, zerophase.Apply(buf, f)
}

// VolumeStep multiplies by Factor with clip prevention.
type VolumeStep struct {
	Factor float64
}

func (s VolumeStep) Name() string { return OpVolume }

func (s VolumeStep) Apply(buf *buffer.Buffer) (StepResult, error) {
	report, err := amplitude.ChangeVolume(buf, s.Factor)
	if err != nil {
		return StepResult{}, err
	}

	return StepResult{Gain: report.Gain, ClipPrevented: report.ClipPrevented}, nil
}

// FadeStep applies linear fade-in and fade-out ramps, in seconds.
type FadeStep struct {
	In, Out float64
}

func (s FadeStep) Name() string { return OpFade }

func (s FadeStep) Apply(buf *buffer.Buffer) (StepResult, error) {
	return StepResult{}, amplitude.Fade(buf, s.In, s.Out)
}

// TrimStep cuts leading and trailing samples at or below Threshold.
type TrimStep struct {
	Threshold float64
}

func (s TrimStep) Name() string { return OpTrim }

func (s TrimStep) Apply(buf *buffer.Buffer) (StepResult, error) {
	before := buf.Len()

	report, err := amplitude.TrimSilence(buf, s.Threshold)
	if err != nil {
		return StepResult{SilentChannels: report.SilentChannels}, err
	}

	return StepResult{SilentChannels: report.SilentChannels, Removed: report.Removed(before)}, nil
}
