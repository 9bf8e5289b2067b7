// Package zerophase applies IIR filters forward and then backward so the
// phase responses cancel.
//
// The signal is extended at both ends by odd reflection and each pass starts
// from the steady state of its first sample, which keeps edge transients out
// of the result. The output always has the input's length. Channel-level
// helpers compute into fresh storage and only swap it into the buffer when
// every channel succeeded.
package zerophase
