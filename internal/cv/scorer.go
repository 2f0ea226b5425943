package cv

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/corticalabs/fcma/internal/core"
	"github.com/corticalabs/fcma/internal/linalg"
)

// Score cross-validates every voxel of a normalized correlation tensor and
// returns one record per voxel, id offset by the tensor's chunk start.
//
// Kernel classifiers get an epochs-by-epochs linear kernel computed from the
// voxel's correlation profiles; everything else gets the raw
// epochs-by-voxels slice. A classifier failure on any voxel aborts the whole
// chunk.
func Score(t *core.CorrelationTensor, labels []int, folds int, clf Classifier) ([]core.ScoreRecord, error) {
	if len(labels) != t.Epochs {
		return nil, fmt.Errorf("got %d labels for %d epochs", len(labels), t.Epochs)
	}
	precomputed := usesPrecomputedKernel(clf)
	var kernel []float32
	if precomputed {
		kernel = make([]float32, t.Epochs*t.Epochs)
	}
	records := make([]core.ScoreRecord, 0, t.Count)
	for i := 0; i < t.Count; i++ {
		var x *mat.Dense
		if precomputed {
			linalg.LinearKernel(t.EpochSlice(i), t.Epochs, t.Voxels, kernel)
			x = toDense(kernel, t.Epochs, t.Epochs)
		} else {
			x = toDense(t.EpochSlice(i), t.Epochs, t.Voxels)
		}
		acc, err := CrossValidate(clf, x, labels, folds)
		if err != nil {
			return nil, fmt.Errorf("voxel %d: %w", t.Start+i, err)
		}
		records = append(records, core.ScoreRecord{Voxel: t.Start + i, Accuracy: acc})
	}
	return records, nil
}

func toDense(data []float32, rows, cols int) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		row := out.RawRowView(r)
		for c := 0; c < cols; c++ {
			row[c] = float64(data[r*cols+c])
		}
	}
	return out
}
