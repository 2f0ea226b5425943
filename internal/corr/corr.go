// Package corr builds cross-subject, cross-epoch correlation tensors for a
// chunk of voxels.
package corr

import (
	"fmt"

	"github.com/corticalabs/fcma/internal/core"
	"github.com/corticalabs/fcma/internal/linalg"
)

// Build computes the correlation of every voxel in ch against every voxel in
// the dataset, per epoch. Entry (i, e, v) of the result is the inner product
// of voxel ch.Start+i and voxel v over epoch e's time samples; with
// standardized activity that is their Pearson correlation.
func Build(ds *core.Dataset, ch core.Chunk) *core.CorrelationTensor {
	if ch.Count < 0 || ch.End() > ds.Voxels() {
		panic(fmt.Sprintf("corr: chunk [%d,%d) out of %d voxels", ch.Start, ch.End(), ds.Voxels()))
	}
	t := core.NewCorrelationTensor(ch.Start, ch.Count, ds.Epochs(), ds.Voxels())
	if ch.Count == 0 {
		return t
	}
	ld := t.Epochs * t.Voxels
	for e, m := range ds.Matrices {
		linalg.Correlate(m.Data, m.Rows, m.Voxels, ch.Start, ch.Count, 1, t.Data[e*t.Voxels:], ld)
	}
	return t
}
