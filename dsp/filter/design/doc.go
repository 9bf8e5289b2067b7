// Package design computes Butterworth IIR filter coefficients.
//
// [Design] validates a [FilterSpec] against a sample rate and returns a
// [Filter]: a cascade of second-order sections consumable by
// dsp/filter/biquad, plus its expanded transfer-function polynomials.
//
// All designs start from the Butterworth analog prototype and map it to the
// z-plane with the bilinear transform, prewarped so the cutoff (or the band
// edges) land exactly where requested.
package design
