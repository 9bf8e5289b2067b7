// Package window generates the tapering windows used for short-time
// spectral analysis.
//
// Windows come in a symmetric form (first and last coefficient equal) and a
// periodic form selected with [WithPeriodic]. The periodic Hann window is
// the STFT default.
package window
