package corr

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corticalabs/fcma/internal/core"
)

func testDataset(t *testing.T, rng *rand.Rand, voxels, epochs, eps, rows int) *core.Dataset {
	t.Helper()
	matrices := make([]core.ActivityMatrix, epochs)
	labels := make([]int, epochs)
	for e := 0; e < epochs; e++ {
		data := make([]float32, rows*voxels)
		for i := range data {
			data[i] = float32(rng.NormFloat64())
		}
		m, err := core.NewActivityMatrix(rows, voxels, data)
		require.NoError(t, err)
		matrices[e] = core.StandardizeColumns(m)
		labels[e] = e % 2
	}
	ds, err := core.NewDataset(matrices, labels, eps)
	require.NoError(t, err)
	return ds
}

func TestBuildMatchesPearson(t *testing.T) {
	rng := rand.New(rand.NewPCG(101, 103))
	ds := testDataset(t, rng, 5, 4, 2, 9)

	ch := core.Chunk{Start: 1, Count: 3}
	tensor := Build(ds, ch)
	require.Equal(t, ch.Start, tensor.Start)
	require.Equal(t, ch.Count, tensor.Count)
	require.Equal(t, ds.Epochs(), tensor.Epochs)
	require.Equal(t, ds.Voxels(), tensor.Voxels)

	for e, m := range ds.Matrices {
		for i := 0; i < ch.Count; i++ {
			for v := 0; v < ds.Voxels(); v++ {
				var dot float64
				for r := 0; r < m.Rows; r++ {
					dot += float64(m.At(r, ch.Start+i)) * float64(m.At(r, v))
				}
				assert.InDelta(t, dot, float64(tensor.At(i, e, v)), 1e-4)
				assert.LessOrEqual(t, float64(tensor.At(i, e, v)), 1+1e-4)
				assert.GreaterOrEqual(t, float64(tensor.At(i, e, v)), -1-1e-4)
			}
		}
	}
}

func TestBuildSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(107, 109))
	ds := testDataset(t, rng, 6, 4, 2, 8)

	ch := core.Chunk{Start: 2, Count: 4}
	tensor := Build(ds, ch)

	for e := 0; e < tensor.Epochs; e++ {
		for i := 0; i < ch.Count; i++ {
			for j := 0; j < ch.Count; j++ {
				assert.InDelta(t,
					float64(tensor.At(i, e, ch.Start+j)),
					float64(tensor.At(j, e, ch.Start+i)),
					1e-5, "epoch %d voxels %d,%d", e, i, j)
			}
		}
	}
}

func TestBuildEmptyChunk(t *testing.T) {
	rng := rand.New(rand.NewPCG(113, 127))
	ds := testDataset(t, rng, 4, 2, 1, 6)
	tensor := Build(ds, core.Chunk{Start: 2, Count: 0})
	assert.Zero(t, tensor.Count)
	assert.Empty(t, tensor.Data)
}

func TestBuildOutOfRangePanics(t *testing.T) {
	rng := rand.New(rand.NewPCG(131, 137))
	ds := testDataset(t, rng, 4, 2, 1, 6)
	assert.Panics(t, func() {
		Build(ds, core.Chunk{Start: 3, Count: 2})
	})
}
