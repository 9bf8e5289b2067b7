package design

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// Kind identifies the filter response shape.
type Kind int

const (
	KindLow Kind = iota + 1
	KindHigh
	KindBand
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindLow:
		return "low"
	case KindHigh:
		return "high"
	case KindBand:
		return "band"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "low", "high" and "band" (any case, optional "pass"
// suffix) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "pass") {
	case "low":
		return KindLow, nil
	case "high":
		return KindHigh, nil
	case "band":
		return KindBand, nil
	default:
		return 0, fmt.Errorf("unknown filter kind %q: %w", s, core.ErrInvalidFilterSpec)
	}
}

// DefaultOrder is the Butterworth order used when a caller does not pick one.
const DefaultOrder = 5

// FilterSpec describes a Butterworth filter request.
//
// Low- and high-pass filters use CutoffHz only. Band-pass filters use
// CutoffHz as the lower and HighCutoffHz as the upper band edge; a band
// request without HighCutoffHz is rejected.
type FilterSpec struct {
	Kind         Kind
	CutoffHz     float64
	HighCutoffHz float64
	Order        int
}

// Validate checks the spec against sampleRate. All failures wrap
// core.ErrInvalidFilterSpec; nothing is clamped.
func (s FilterSpec) Validate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate %d: %w", sampleRate, core.ErrInvalidFilterSpec)
	}

	if s.Order < 1 {
		return fmt.Errorf("order %d < 1: %w", s.Order, core.ErrInvalidFilterSpec)
	}

	nyquist := float64(sampleRate) / 2

	switch s.Kind {
	case KindLow, KindHigh:
		if s.HighCutoffHz != 0 {
			return fmt.Errorf("%s-pass takes a single cutoff, got upper edge %g Hz: %w",
				s.Kind, s.HighCutoffHz, core.ErrInvalidFilterSpec)
		}

		return checkNormalized(s.CutoffHz, nyquist)
	case KindBand:
		if s.HighCutoffHz == 0 {
			return fmt.Errorf("band-pass needs low and high cutoffs, got only %g Hz: %w",
				s.CutoffHz, core.ErrInvalidFilterSpec)
		}

		if err := checkNormalized(s.CutoffHz, nyquist); err != nil {
			return err
		}

		if err := checkNormalized(s.HighCutoffHz, nyquist); err != nil {
			return err
		}

		if s.CutoffHz >= s.HighCutoffHz {
			return fmt.Errorf("band edges %g Hz >= %g Hz: %w",
				s.CutoffHz, s.HighCutoffHz, core.ErrInvalidFilterSpec)
		}

		return nil
	default:
		return fmt.Errorf("unknown filter kind %v: %w", s.Kind, core.ErrInvalidFilterSpec)
	}
}

func checkNormalized(freq, nyquist float64) error {
	wn := freq / nyquist
	if math.IsNaN(wn) || wn <= 0 || wn >= 1 {
		return fmt.Errorf("normalized cutoff %g (%g Hz, Nyquist %g Hz) outside (0, 1): %w",
			wn, freq, nyquist, core.ErrInvalidFilterSpec)
	}

	return nil
}
