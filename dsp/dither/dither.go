// Package dither quantizes normalized samples to signed integer PCM with
// optional dither noise and first-order error feedback.
package dither

import "fmt"

// Type selects the probability distribution of the dither noise.
type Type int

const (
	// None rounds to the nearest step without noise.
	None Type = iota
	// Rectangular adds uniform noise of one step peak to peak.
	Rectangular
	// Triangular adds TPDF noise, the sum of two uniform draws.
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rectangular", "triangular"}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType resolves "none", "rectangular"/"rpdf" or "triangular"/"tpdf".
func ParseType(s string) (Type, error) {
	switch s {
	case "none", "":
		return None, nil
	case "rectangular", "rpdf":
		return Rectangular, nil
	case "triangular", "tpdf":
		return Triangular, nil
	}

	return None, fmt.Errorf("dither: unknown type %q", s)
}
