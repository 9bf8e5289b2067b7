package core

import "errors"

// Error kinds shared by every transform and analysis package. Callers match
// them with errors.Is; operations wrap them with call-site context.
var (
	// ErrInvalidBuffer reports a non-positive sample rate, no channels, or
	// channels of different lengths.
	ErrInvalidBuffer = errors.New("invalid sample buffer")

	// ErrInvalidFilterSpec reports a cutoff outside (0, Nyquist), an order
	// below 1, an unknown filter kind, or a malformed band.
	ErrInvalidFilterSpec = errors.New("invalid filter spec")

	// ErrInvalidDuration reports negative fade lengths or fades that do not
	// fit into the buffer.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrAllSilence reports that every channel stays at or below the trim
	// threshold.
	ErrAllSilence = errors.New("all channels are silent")

	// ErrEmptyBuffer reports channels without samples where analysis needs data.
	ErrEmptyBuffer = errors.New("empty buffer")

	// ErrNumericOverflow reports NaN or Inf produced by a computation, most
	// often an unstable filter.
	ErrNumericOverflow = errors.New("numeric overflow")

	// ErrInvalidParameter reports an out-of-range scalar parameter such as a
	// non-positive target peak or a non-finite gain.
	ErrInvalidParameter = errors.New("invalid parameter")
)
