package cv

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CrossValidate runs stratified, unshuffled k-fold cross-validation of clf
// over the samples in x and returns the mean accuracy across folds. When
// clf takes a precomputed kernel, x must be the full sample-by-sample
// kernel matrix and fold slicing restricts both axes; otherwise x holds one
// feature row per sample and only rows are sliced.
func CrossValidate(clf Classifier, x *mat.Dense, y []int, folds int) (float64, error) {
	testFolds, err := StratifiedKFold(y, folds)
	if err != nil {
		return 0, err
	}
	precomputed := usesPrecomputedKernel(clf)
	_, cols := x.Dims()
	scores := make([]float64, len(testFolds))
	for f, test := range testFolds {
		train := complement(test, len(y))
		var xTrain, xTest *mat.Dense
		if precomputed {
			xTrain = submatrix(x, train, train)
			xTest = submatrix(x, test, train)
		} else {
			xTrain = pickRows(x, train, cols)
			xTest = pickRows(x, test, cols)
		}
		if err := clf.Fit(xTrain, pickLabels(y, train)); err != nil {
			return 0, fmt.Errorf("fold %d: %w", f, err)
		}
		acc, err := clf.Accuracy(xTest, pickLabels(y, test))
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", f, err)
		}
		scores[f] = acc
	}
	return floats.Sum(scores) / float64(len(scores)), nil
}

func pickRows(x *mat.Dense, rows []int, cols int) *mat.Dense {
	out := mat.NewDense(len(rows), cols, nil)
	for i, r := range rows {
		out.SetRow(i, x.RawRowView(r))
	}
	return out
}

func submatrix(x *mat.Dense, rows, cols []int) *mat.Dense {
	out := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			out.Set(i, j, x.At(r, c))
		}
	}
	return out
}

func pickLabels(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
