package time

// FrameConfig describes how a signal is cut into analysis frames.
type FrameConfig struct {
	FrameLength int
	HopLength   int
	// Center pads FrameLength/2 samples on both sides by repeating the edge
	// samples, so frame t is centred on sample t*HopLength.
	Center bool
}

// DefaultFrameConfig matches the STFT framing used for spectral features.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{FrameLength: 2048, HopLength: 512, Center: true}
}

// NumFrames returns the number of frames cfg yields for n samples.
func (cfg FrameConfig) NumFrames(n int) int {
	if n <= 0 || cfg.FrameLength <= 0 || cfg.HopLength <= 0 {
		return 0
	}

	if cfg.Center {
		n += 2 * (cfg.FrameLength / 2)
	}

	if n < cfg.FrameLength {
		return 0
	}

	return 1 + (n-cfg.FrameLength)/cfg.HopLength
}

// ZeroCrossingRate returns, per frame, the number of sign changes inside the
// frame divided by the frame length.
func ZeroCrossingRate(signal []float64, cfg FrameConfig) []float64 {
	frames := cfg.NumFrames(len(signal))
	if frames == 0 {
		return nil
	}

	padded := signal
	if cfg.Center {
		padded = edgePad(signal, cfg.FrameLength/2)
	}

	out := make([]float64, frames)
	for t := range out {
		start := t * cfg.HopLength
		out[t] = float64(ZeroCrossings(padded[start:start+cfg.FrameLength])) / float64(cfg.FrameLength)
	}

	return out
}

// MeanZeroCrossingRate averages ZeroCrossingRate over all frames. It returns
// 0 when the signal yields no frame.
func MeanZeroCrossingRate(signal []float64, cfg FrameConfig) float64 {
	rates := ZeroCrossingRate(signal, cfg)
	if len(rates) == 0 {
		return 0
	}

	var sum float64
	for _, r := range rates {
		sum += r
	}

	return sum / float64(len(rates))
}

func edgePad(signal []float64, pad int) []float64 {
	out := make([]float64, len(signal)+2*pad)
	copy(out[pad:], signal)

	first, last := signal[0], signal[len(signal)-1]
	for i := 0; i < pad; i++ {
		out[i] = first
		out[len(out)-1-i] = last
	}

	return out
}
