// Package wavio converts between WAV files and [buffer.Buffer].
//
// Integer PCM at 8, 16, 24 and 32 bits is supported. Samples are scaled to
// [-1, 1) on decode. Encode clamps to [-1, 1] and quantizes through
// [dither.Quantizer], optionally with dither noise.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/dsp/dither"
)

// WAVE format tags accepted by Decode.
const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// DefaultBitDepth is used by EncodeFile callers that have no preference.
const DefaultBitDepth = 16

var (
	// ErrNotWAV reports input that is not a RIFF/WAVE stream.
	ErrNotWAV = errors.New("not a wav file")
	// ErrUnsupportedFormat reports a compressed or floating-point encoding,
	// or a bit depth other than 8, 16, 24 or 32.
	ErrUnsupportedFormat = errors.New("unsupported wav format")
)

// Decode reads a whole WAV stream into a new buffer.
func Decode(r io.ReadSeeker) (*buffer.Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWAV
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("format tag %#x: %w", dec.WavAudioFormat, ErrUnsupportedFormat)
	}

	depth := int(dec.BitDepth)
	if !supportedDepth(depth) {
		return nil, fmt.Errorf("%d-bit samples: %w", depth, ErrUnsupportedFormat)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}

	numCh := pcm.Format.NumChannels
	if numCh < 1 {
		return nil, fmt.Errorf("%d channels: %w", numCh, core.ErrInvalidBuffer)
	}

	frames := len(pcm.Data) / numCh
	channels := make([][]float64, numCh)

	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}

	scale := fullScale(depth)
	offset := 0
	if depth == 8 {
		offset = 128
	}

	for i := range frames {
		for ch := range numCh {
			channels[ch][i] = float64(pcm.Data[i*numCh+ch]-offset) / scale
		}
	}

	buf, err := buffer.New(channels, pcm.Format.SampleRate)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// Option configures Encode.
type Option func(*encodeConfig)

type encodeConfig struct {
	dither     dither.Type
	ditherOpts []dither.Option
}

// WithDither quantizes with dither noise of type t. Extra options, such as
// a seeded generator or noise shaping, are passed to each channel's
// quantizer.
func WithDither(t dither.Type, opts ...dither.Option) Option {
	return func(cfg *encodeConfig) {
		cfg.dither = t
		cfg.ditherOpts = opts
	}
}

// Encode writes buf as integer PCM at bitDepth. Without WithDither samples
// are rounded to the nearest step.
func Encode(w io.WriteSeeker, buf *buffer.Buffer, bitDepth int, opts ...Option) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	if !supportedDepth(bitDepth) {
		return fmt.Errorf("%d-bit samples: %w", bitDepth, ErrUnsupportedFormat)
	}

	cfg := encodeConfig{dither: dither.None}
	for _, opt := range opts {
		opt(&cfg)
	}

	numCh := buf.NumChannels()
	data := make([]int, buf.Len()*numCh)

	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	for ch := range numCh {
		q, err := dither.NewQuantizer(bitDepth, append([]dither.Option{dither.WithType(cfg.dither)}, cfg.ditherOpts...)...)
		if err != nil {
			return err
		}

		for i, x := range buf.Samples(ch) {
			if math.IsNaN(x) {
				return fmt.Errorf("channel %d sample %d is NaN: %w", ch, i, core.ErrNumericOverflow)
			}

			data[i*numCh+ch] = q.Quantize(core.Clamp(x, -1, 1)) + offset
		}
	}

	enc := wav.NewEncoder(w, buf.SampleRate(), bitDepth, numCh, formatPCM)

	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numCh, SampleRate: buf.SampleRate()},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("write pcm: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}

	return nil
}

// DecodeFile opens and decodes the WAV file at path.
func DecodeFile(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return buf, nil
}

// EncodeFile creates or truncates path and writes buf to it.
func EncodeFile(path string, buf *buffer.Buffer, bitDepth int, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := Encode(f, buf, bitDepth, opts...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

func supportedDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}

	return false
}

func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}
