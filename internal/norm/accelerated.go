package norm

import (
	"math"

	"github.com/corticalabs/fcma/internal/core"
)

// Accelerated is the hot-path normalizer. It transforms a whole subject
// block in place, then computes every column's mean and variance in one
// cache-friendly pass over the block rows before writing the z-scores back.
type Accelerated struct{}

func (Accelerated) Normalize(t *core.CorrelationTensor, epochsPerSubject int) {
	nv := t.Voxels
	sum := make([]float64, nv)
	sumSq := make([]float64, nv)
	inv := 1 / float64(epochsPerSubject)
	for i := 0; i < t.Count; i++ {
		block := t.EpochSlice(i)
		for blockStart := 0; blockStart < t.Epochs; blockStart += epochsPerSubject {
			rows := block[blockStart*nv : (blockStart+epochsPerSubject)*nv]
			for j := range sum {
				sum[j] = 0
				sumSq[j] = 0
			}
			for e := 0; e < epochsPerSubject; e++ {
				row := rows[e*nv : (e+1)*nv]
				for v, r := range row {
					z := fisher(float64(r))
					row[v] = float32(z)
					sum[v] += z
					sumSq[v] += z * z
				}
			}
			for e := 0; e < epochsPerSubject; e++ {
				row := rows[e*nv : (e+1)*nv]
				for v := range row {
					mean := sum[v] * inv
					std := math.Sqrt(sumSq[v]*inv - mean*mean)
					z := (float64(row[v]) - mean) / std
					if math.IsNaN(z) || math.IsInf(z, 0) {
						z = 0
					}
					row[v] = float32(z)
				}
			}
		}
	}
}
