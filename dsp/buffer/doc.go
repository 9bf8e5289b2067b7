// Package buffer provides the multi-channel sample buffer shared by every
// transform and analysis package, plus a scratch pool for allocation-friendly
// frame processing.
//
// A [Buffer] owns its channel slices. Transforms mutate it in place and
// restore the equal-length invariant before returning; analysis code only
// reads it. A Buffer is not safe for concurrent mutation: callers hand it to
// exactly one writer at a time.
package buffer
