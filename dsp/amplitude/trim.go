package amplitude

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// DefaultSilenceThreshold is the absolute amplitude at or below which a
// sample counts as silence.
const DefaultSilenceThreshold = 0.01

// TrimReport describes the region kept by TrimSilence.
type TrimReport struct {
	// Start and End bound the kept samples, [Start, End), in the
	// coordinates of the untrimmed buffer.
	Start, End int
	// SilentChannels lists channels with no sample above the threshold.
	// They are trimmed along with the others.
	SilentChannels []int
}

// Removed returns how many samples were cut per channel, given the
// original length.
func (r TrimReport) Removed(originalLen int) int {
	return originalLen - (r.End - r.Start)
}

// TrimSilence cuts leading and trailing silence. Each channel's audible
// region runs from its first to its last sample whose magnitude exceeds
// threshold; the buffer keeps the union of those regions so all channels
// stay equal length. When every channel is silent the buffer is left
// untouched and core.ErrAllSilence is returned.
func TrimSilence(buf *buffer.Buffer, threshold float64) (TrimReport, error) {
	if err := buf.Validate(); err != nil {
		return TrimReport{}, err
	}

	if math.IsNaN(threshold) || threshold < 0 {
		return TrimReport{}, fmt.Errorf("silence threshold %v: %w", threshold, core.ErrInvalidParameter)
	}

	report := TrimReport{Start: buf.Len(), End: 0}

	for ch := range buf.NumChannels() {
		first, last, ok := audibleRegion(buf.Samples(ch), threshold)
		if !ok {
			report.SilentChannels = append(report.SilentChannels, ch)
			continue
		}

		report.Start = min(report.Start, first)
		report.End = max(report.End, last+1)
	}

	if len(report.SilentChannels) == buf.NumChannels() {
		return TrimReport{SilentChannels: report.SilentChannels},
			fmt.Errorf("threshold %v over %d channels: %w", threshold, buf.NumChannels(), core.ErrAllSilence)
	}

	if err := buf.Slice(report.Start, report.End); err != nil {
		return TrimReport{}, err
	}

	return report, nil
}

func audibleRegion(samples []float64, threshold float64) (first, last int, ok bool) {
	first = -1
	for i, x := range samples {
		if math.Abs(x) > threshold {
			first = i
			break
		}
	}

	if first < 0 {
		return 0, 0, false
	}

	for last = len(samples) - 1; last > first; last-- {
		if math.Abs(samples[last]) > threshold {
			break
		}
	}

	return first, last, true
}
