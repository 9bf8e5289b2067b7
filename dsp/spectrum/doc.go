// Package spectrum turns a mono signal into short-time spectral features.
//
// [STFT] frames the signal (centred, zero padded, periodic window) and
// transforms each frame with algo-fft. The magnitude spectrogram feeds the
// shape descriptors in stats/frequency; the power spectrogram feeds the mel
// filter bank for [MFCC] and the pitch-class filter bank for [Chroma], which
// in turn feeds [Tonnetz]. [Analyze] runs the whole chain and averages every
// feature over frames.
//
// Spectrograms are frame-major: frames[t][k] is bin k of frame t.
package spectrum
