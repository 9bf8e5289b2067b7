package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to integers in
// [-2^(bits-1), 2^(bits-1)-1]. Full scale maps to ±(2^(bits-1)-1).
//
// A Quantizer keeps error-feedback state and is not safe for concurrent
// use; run one per channel.
type Quantizer struct {
	bitDepth int
	typ      Type
	shaping  bool
	rng      *rand.Rand

	scale  float64
	lo, hi int
	err    float64
}

// NewQuantizer creates a quantizer for bitDepth in [2, 32]. The default is
// triangular dither without noise shaping.
func NewQuantizer(bitDepth int, opts ...Option) (*Quantizer, error) {
	if bitDepth < 2 || bitDepth > 32 {
		return nil, fmt.Errorf("dither: bit depth must be in [2, 32]: %d", bitDepth)
	}

	cfg := config{typ: Triangular}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	full := math.Exp2(float64(bitDepth - 1))

	return &Quantizer{
		bitDepth: bitDepth,
		typ:      cfg.typ,
		shaping:  cfg.shaping,
		rng:      cfg.rng,
		scale:    full - 1,
		lo:       -int(full),
		hi:       int(full) - 1,
	}, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Quantize converts one sample. NaN maps to zero.
func (q *Quantizer) Quantize(x float64) int {
	if math.IsNaN(x) {
		x = 0
	}

	v := x*q.scale - q.err

	out := int(math.Floor(v + 0.5 + q.noise()))
	out = max(q.lo, min(q.hi, out))

	if q.shaping {
		q.err = float64(out) - v
	}

	return out
}

// QuantizeBlock converts src into dst, which must be at least as long.
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) {
	for i, x := range src {
		dst[i] = q.Quantize(x)
	}
}

// Reset clears the error-feedback state.
func (q *Quantizer) Reset() {
	q.err = 0
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case Rectangular:
		return q.rng.Float64() - 0.5
	case Triangular:
		return q.rng.Float64() - q.rng.Float64()
	default:
		return 0
	}
}
