package norm

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corticalabs/fcma/internal/core"
)

func randomTensor(rng *rand.Rand, count, epochs, voxels int) *core.CorrelationTensor {
	t := core.NewCorrelationTensor(0, count, epochs, voxels)
	for i := range t.Data {
		// Stay clear of +/-1 so the transform is finite everywhere.
		t.Data[i] = float32(rng.Float64()*1.8 - 0.9)
	}
	return t
}

func backends() map[string]Normalizer {
	return map[string]Normalizer{
		"reference":   Reference{},
		"accelerated": Accelerated{},
	}
}

func TestNormalizeDegenerateBlockIsZero(t *testing.T) {
	for name, n := range backends() {
		t.Run(name, func(t *testing.T) {
			// Two subjects, two epochs each; every voxel column holds the
			// same value across a subject's epochs.
			tensor := core.NewCorrelationTensor(0, 1, 4, 3)
			for e := 0; e < 4; e++ {
				for v := 0; v < 3; v++ {
					tensor.Data[e*3+v] = float32(0.1 * float64(v+1))
				}
			}
			n.Normalize(tensor, 2)
			for i, x := range tensor.Data {
				assert.Zerof(t, x, "entry %d", i)
				assert.False(t, math.IsNaN(float64(x)))
			}
		})
	}
}

func TestNormalizePerfectCorrelationIsZero(t *testing.T) {
	// A correlation of exactly 1 (a voxel against itself) transforms to
	// +Inf; the block must come out zeroed, not propagate it.
	for name, n := range backends() {
		t.Run(name, func(t *testing.T) {
			tensor := core.NewCorrelationTensor(0, 1, 2, 2)
			tensor.Data = []float32{1, 0.3, 1, -0.2}
			n.Normalize(tensor, 2)
			assert.Zero(t, tensor.At(0, 0, 0))
			assert.Zero(t, tensor.At(0, 1, 0))
		})
	}
}

func TestNormalizeTwoEpochBlock(t *testing.T) {
	// With two epochs per subject the z-scores of any column with two
	// distinct values are exactly +1 and -1, larger value first.
	for name, n := range backends() {
		t.Run(name, func(t *testing.T) {
			tensor := core.NewCorrelationTensor(0, 1, 2, 1)
			tensor.Data = []float32{0.8, 0.2}
			n.Normalize(tensor, 2)
			assert.InDelta(t, 1, float64(tensor.At(0, 0, 0)), 1e-5)
			assert.InDelta(t, -1, float64(tensor.At(0, 1, 0)), 1e-5)
		})
	}
}

func TestNormalizeBackendsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(41, 43))
	a := randomTensor(rng, 3, 8, 7)
	b := core.NewCorrelationTensor(a.Start, a.Count, a.Epochs, a.Voxels)
	copy(b.Data, a.Data)

	Reference{}.Normalize(a, 4)
	Accelerated{}.Normalize(b, 4)

	require.Equal(t, len(a.Data), len(b.Data))
	for i := range a.Data {
		assert.InDelta(t, float64(a.Data[i]), float64(b.Data[i]), 1e-4, "entry %d", i)
	}
}

func TestNormalizeBlockStatistics(t *testing.T) {
	// After normalization every column of every subject block has zero
	// mean and unit population variance, unless it was degenerate.
	rng := rand.New(rand.NewPCG(47, 53))
	tensor := randomTensor(rng, 2, 6, 5)
	Accelerated{}.Normalize(tensor, 3)

	eps := 3
	for i := 0; i < tensor.Count; i++ {
		for blockStart := 0; blockStart < tensor.Epochs; blockStart += eps {
			for v := 0; v < tensor.Voxels; v++ {
				var sum, sumSq float64
				for e := 0; e < eps; e++ {
					x := float64(tensor.At(i, blockStart+e, v))
					sum += x
					sumSq += x * x
				}
				assert.InDelta(t, 0, sum/float64(eps), 1e-4)
				assert.InDelta(t, 1, sumSq/float64(eps), 1e-3)
			}
		}
	}
}

func BenchmarkAccelerated(b *testing.B) {
	rng := rand.New(rand.NewPCG(59, 61))
	tensor := randomTensor(rng, 8, 16, 512)
	orig := make([]float32, len(tensor.Data))
	copy(orig, tensor.Data)

	b.ResetTimer()
	for b.Loop() {
		copy(tensor.Data, orig)
		Accelerated{}.Normalize(tensor, 4)
	}
}
