package cv

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Classifier is the pluggable classification capability. Fit trains on the
// given samples; Accuracy returns the fraction of correctly predicted
// labels on held-out samples. Implementations are reused across folds, so
// Fit must fully reset any trained state.
type Classifier interface {
	Fit(x mat.Matrix, y []int) error
	Accuracy(x mat.Matrix, y []int) (float64, error)
}

// KernelClassifier marks classifiers that take a precomputed kernel matrix
// instead of raw feature vectors. For such classifiers Fit receives
// K[train, train] and Accuracy receives K[test, train].
type KernelClassifier interface {
	Classifier
	PrecomputedKernel() bool
}

func usesPrecomputedKernel(clf Classifier) bool {
	kc, ok := clf.(KernelClassifier)
	return ok && kc.PrecomputedKernel()
}

// classTargets maps a binary label set onto -1/+1 regression targets. The
// lower class value becomes -1.
func classTargets(y []int) (neg, pos int, targets []float64, err error) {
	seen := make(map[int]bool)
	for _, l := range y {
		seen[l] = true
	}
	if len(seen) != 2 {
		return 0, 0, nil, fmt.Errorf("need exactly 2 classes to fit, got %d", len(seen))
	}
	neg, pos = y[0], y[0]
	for l := range seen {
		if l < neg {
			neg = l
		}
		if l > pos {
			pos = l
		}
	}
	targets = make([]float64, len(y))
	for i, l := range y {
		if l == pos {
			targets[i] = 1
		} else {
			targets[i] = -1
		}
	}
	return neg, pos, targets, nil
}
