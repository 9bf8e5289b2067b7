package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// tonnetzBasis maps pitch classes onto three circles: fifths (7π/6 per
// semitone), minor thirds (3π/2) and major thirds (2π/3), each as a
// sine/cosine pair. The major-third circle has radius 0.5.
var tonnetzBasis = func() *mat.Dense {
	angles := []float64{7.0 / 6, 3.0 / 2, 2.0 / 3}
	radii := []float64{1, 1, 0.5}

	basis := mat.NewDense(6, NumPitchClasses, nil)
	for i, a := range angles {
		for c := range NumPitchClasses {
			theta := math.Pi * a * float64(c)
			basis.Set(2*i, c, radii[i]*math.Sin(theta))
			basis.Set(2*i+1, c, radii[i]*math.Cos(theta))
		}
	}

	return basis
}()

// Tonnetz returns the 6-dimensional tonal centroid of every chroma frame.
// Frames are L1-normalized first so the centroid is independent of level;
// silent frames map to the origin.
//
// The input here is usually STFT chroma from Chroma. librosa computes its
// tonnetz from constant-Q chroma, so the values are not expected to match
// librosa's.
func Tonnetz(chroma [][]float64) ([][]float64, error) {
	m, err := frameMatrix(chroma, NumPitchClasses)
	if err != nil {
		return nil, err
	}

	frames, _ := m.Dims()
	for t := range frames {
		row := m.RawRowView(t)

		var sum float64
		for _, v := range row {
			sum += math.Abs(v)
		}

		if sum < tiny {
			continue
		}

		for i := range row {
			row[i] /= sum
		}
	}

	var ton mat.Dense
	ton.Mul(m, tonnetzBasis.T())

	return rows(&ton), nil
}

// Mean returns the average of every value of a frame-major feature matrix.
func Mean(frames [][]float64) (float64, error) {
	var (
		sum float64
		n   int
	)

	for _, f := range frames {
		for _, v := range f {
			sum += v
		}

		n += len(f)
	}

	if n == 0 {
		return 0, fmt.Errorf("mean of empty feature matrix: %w", core.ErrEmptyBuffer)
	}

	return sum / float64(n), nil
}

// ColumnMeans averages each feature dimension over frames.
func ColumnMeans(frames [][]float64) []float64 {
	if len(frames) == 0 {
		return nil
	}

	out := make([]float64, len(frames[0]))
	for _, f := range frames {
		for i := range out {
			out[i] += f[i]
		}
	}

	for i := range out {
		out[i] /= float64(len(frames))
	}

	return out
}
