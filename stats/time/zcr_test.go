package time

import (
	"testing"

	"github.com/cwbudde/algo-audiokit/internal/testutil"
)

func TestNumFrames(t *testing.T) {
	cfg := DefaultFrameConfig()

	tests := []struct {
		n, want int
	}{
		{0, 0},
		{1, 1},
		{511, 1},
		{512, 2},
		{22050, 44},
	}

	for _, tt := range tests {
		if got := cfg.NumFrames(tt.n); got != tt.want {
			t.Fatalf("NumFrames(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}

	raw := FrameConfig{FrameLength: 2048, HopLength: 512}
	if got := raw.NumFrames(1000); got != 0 {
		t.Fatalf("uncentered NumFrames(1000) = %d, want 0", got)
	}
}

func TestMeanZeroCrossingRateSine(t *testing.T) {
	const rate = 22050

	x := testutil.DeterministicSine(440, rate, 0.5, rate)
	got := MeanZeroCrossingRate(x, DefaultFrameConfig())

	// Interior frames see 2*440/22050 crossings per sample; the edge-padded
	// first and last frames see fewer.
	want := 2.0 * 440 / rate
	if got > want+1e-3 || got < want-2e-3 {
		t.Fatalf("zcr = %v, want about %v", got, want)
	}
}

func TestZeroCrossingRateEdgePadding(t *testing.T) {
	cfg := FrameConfig{FrameLength: 4, HopLength: 2, Center: true}

	// Padded: [1 1 | 1 -1 1 | 1 1]; frames start at 0 and 2.
	rates := ZeroCrossingRate([]float64{1, -1, 1}, cfg)
	testutil.RequireSliceNearlyEqual(t, rates, []float64{0.25, 0.5}, 0)
}

func TestMeanZeroCrossingRateEmpty(t *testing.T) {
	if got := MeanZeroCrossingRate(nil, DefaultFrameConfig()); got != 0 {
		t.Fatalf("zcr of empty = %v", got)
	}
}
