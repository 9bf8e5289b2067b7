// Package feature reduces a sample buffer to a fixed, ordered vector of
// named scalar features.
//
// The key set never varies between calls, so two vectors can be compared
// or diffed key by key:
//
//	mean, std, max, min, zeroCrossingRate,
//	spectralCentroid, spectralBandwidth, spectralRolloff,
//	mfcc_1 ... mfcc_13, chromaMean, tonnetzMean
//
// Multi-channel buffers are downmixed by averaging before analysis.
package feature
