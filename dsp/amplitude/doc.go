// Package amplitude implements the in-place level and envelope transforms
// applied to a [buffer.Buffer]: peak normalization, volume change with clip
// prevention, linear fades and silence trimming.
//
// Every function validates its arguments and the buffer before touching any
// sample, so a returned error always leaves the buffer unchanged.
package amplitude
