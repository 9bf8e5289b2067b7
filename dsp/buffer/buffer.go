package buffer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// Buffer holds equal-length float64 channels and their sample rate.
// The sample rate is fixed at construction; no transform resamples.
type Buffer struct {
	sampleRate int
	channels   [][]float64
}

// Info summarizes a buffer for display layers.
type Info struct {
	SampleRate  int     `json:"sampleRate"`
	NumChannels int     `json:"numChannels"`
	Samples     int     `json:"samples"`
	Duration    float64 `json:"duration"` // seconds
	Peak        float64 `json:"peak"`
	RMS         float64 `json:"rms"`
}

// New copies channels into a new Buffer.
// It fails with core.ErrInvalidBuffer when sampleRate <= 0, no channel is
// given, or the channels differ in length.
func New(channels [][]float64, sampleRate int) (*Buffer, error) {
	if err := validate(channels, sampleRate); err != nil {
		return nil, err
	}

	owned := make([][]float64, len(channels))
	for i, ch := range channels {
		owned[i] = append([]float64(nil), ch...)
	}

	return &Buffer{sampleRate: sampleRate, channels: owned}, nil
}

// NewSilent returns a zero-filled Buffer.
func NewSilent(numChannels, length, sampleRate int) (*Buffer, error) {
	if length < 0 {
		return nil, fmt.Errorf("negative length %d: %w", length, core.ErrInvalidBuffer)
	}

	channels := make([][]float64, numChannels)
	for i := range channels {
		channels[i] = make([]float64, length)
	}

	if err := validate(channels, sampleRate); err != nil {
		return nil, err
	}

	return &Buffer{sampleRate: sampleRate, channels: channels}, nil
}

func validate(channels [][]float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate %d: %w", sampleRate, core.ErrInvalidBuffer)
	}

	if len(channels) == 0 {
		return fmt.Errorf("no channels: %w", core.ErrInvalidBuffer)
	}

	n := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("channel %d has %d samples, channel 0 has %d: %w",
				i+1, len(ch), n, core.ErrInvalidBuffer)
		}
	}

	return nil
}

// Validate re-checks the buffer invariants.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer: %w", core.ErrInvalidBuffer)
	}

	return validate(b.channels, b.sampleRate)
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.channels) }

// Len returns the per-channel sample count.
func (b *Buffer) Len() int {
	if len(b.channels) == 0 {
		return 0
	}

	return len(b.channels[0])
}

// Duration returns the length in seconds.
func (b *Buffer) Duration() float64 {
	if b.sampleRate <= 0 {
		return 0
	}

	return float64(b.Len()) / float64(b.sampleRate)
}

// Samples returns the backing slice of channel ch. Transforms write through
// it; read-only consumers should use Channel instead.
func (b *Buffer) Samples(ch int) []float64 {
	return b.channels[ch]
}

// Channel returns a copy of channel ch.
func (b *Buffer) Channel(ch int) []float64 {
	return append([]float64(nil), b.channels[ch]...)
}

// Channels returns a deep copy of all channels.
func (b *Buffer) Channels() [][]float64 {
	out := make([][]float64, len(b.channels))
	for i := range b.channels {
		out[i] = b.Channel(i)
	}

	return out
}

// Replace swaps in new channel contents, taking ownership of the slices.
// The channel count must match and all channels must share one length;
// on failure the buffer is left untouched.
func (b *Buffer) Replace(channels [][]float64) error {
	if len(channels) != len(b.channels) {
		return fmt.Errorf("replace with %d channels, buffer has %d: %w",
			len(channels), len(b.channels), core.ErrInvalidBuffer)
	}

	if err := validate(channels, b.sampleRate); err != nil {
		return err
	}

	b.channels = channels

	return nil
}

// Slice keeps samples [start, end) of every channel.
func (b *Buffer) Slice(start, end int) error {
	if start < 0 || end > b.Len() || start > end {
		return fmt.Errorf("slice [%d, %d) of %d samples: %w", start, end, b.Len(), core.ErrInvalidBuffer)
	}

	for i, ch := range b.channels {
		b.channels[i] = ch[start:end:end]
	}

	return nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{sampleRate: b.sampleRate, channels: b.Channels()}
}

// PeakAbsolute returns the largest absolute sample value over all channels,
// or 0 when the channels are empty.
func (b *Buffer) PeakAbsolute() float64 {
	var peak float64
	for _, ch := range b.channels {
		peak = math.Max(peak, core.PeakAbs(ch))
	}

	return peak
}

// RMS returns the root-mean-square over all channels flattened.
func (b *Buffer) RMS() float64 {
	var (
		sumSq float64
		n     int
	)

	for _, ch := range b.channels {
		for _, x := range ch {
			sumSq += x * x
		}

		n += len(ch)
	}

	if n == 0 {
		return 0
	}

	return math.Sqrt(sumSq / float64(n))
}

// Mono returns the sample-wise average of all channels. A single-channel
// buffer yields a copy of that channel.
func (b *Buffer) Mono() []float64 {
	n := b.Len()
	out := make([]float64, n)

	if len(b.channels) == 0 {
		return out
	}

	for _, ch := range b.channels {
		for i, x := range ch {
			out[i] += x
		}
	}

	if len(b.channels) > 1 {
		scale := 1 / float64(len(b.channels))
		for i := range out {
			out[i] *= scale
		}
	}

	return out
}

// Info returns a summary of the buffer.
func (b *Buffer) Info() Info {
	return Info{
		SampleRate:  b.sampleRate,
		NumChannels: len(b.channels),
		Samples:     b.Len(),
		Duration:    b.Duration(),
		Peak:        b.PeakAbsolute(),
		RMS:         b.RMS(),
	}
}
