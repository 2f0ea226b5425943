package norm

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/corticalabs/fcma/internal/core"
)

// Reference is the portable normalizer. It walks one voxel column at a time
// in float64 and leans on gonum/stat for the block statistics. Slow, but
// easy to audit; the accelerated backend is verified against it.
type Reference struct{}

func (Reference) Normalize(t *core.CorrelationTensor, epochsPerSubject int) {
	vals := make([]float64, epochsPerSubject)
	for i := 0; i < t.Count; i++ {
		for blockStart := 0; blockStart < t.Epochs; blockStart += epochsPerSubject {
			for v := 0; v < t.Voxels; v++ {
				for e := 0; e < epochsPerSubject; e++ {
					vals[e] = fisher(float64(t.At(i, blockStart+e, v)))
				}
				mean := stat.Mean(vals, nil)
				std := stat.PopStdDev(vals, nil)
				for e := 0; e < epochsPerSubject; e++ {
					z := (vals[e] - mean) / std
					if math.IsNaN(z) || math.IsInf(z, 0) {
						z = 0
					}
					t.Data[(i*t.Epochs+blockStart+e)*t.Voxels+v] = float32(z)
				}
			}
		}
	}
}
