package cv

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// solveDual solves (G + lambda*I) a = t for the dual coefficients, where G
// is a symmetric Gram matrix. The regularized system is positive definite
// for any lambda > 0.
func solveDual(gram mat.Matrix, lambda float64, targets []float64) (*mat.VecDense, error) {
	n := len(targets)
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := gram.At(i, j)
			if i == j {
				v += lambda
			}
			sym.SetSym(i, j, v)
		}
	}
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return nil, errors.New("regularized gram matrix is not positive definite")
	}
	alpha := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(alpha, mat.NewVecDense(n, targets)); err != nil {
		return nil, err
	}
	return alpha, nil
}

// decide counts correct predictions given decision scores: non-negative
// scores predict the positive class.
func decide(scores *mat.VecDense, neg, pos int, y []int) float64 {
	correct := 0
	for i, l := range y {
		pred := neg
		if scores.AtVec(i) >= 0 {
			pred = pos
		}
		if pred == l {
			correct++
		}
	}
	return float64(correct) / float64(len(y))
}

// RidgeClassifier is a binary linear classifier trained on raw feature
// vectors. It fits ridge regression to -1/+1 targets in the dual, so the
// solve stays at sample-count scale no matter how many voxels the feature
// vectors span.
type RidgeClassifier struct {
	Lambda float64

	train    *mat.Dense
	alpha    *mat.VecDense
	neg, pos int
}

func NewRidgeClassifier(lambda float64) *RidgeClassifier {
	return &RidgeClassifier{Lambda: lambda}
}

func (c *RidgeClassifier) Fit(x mat.Matrix, y []int) error {
	neg, pos, targets, err := classTargets(y)
	if err != nil {
		return err
	}
	var gram mat.Dense
	gram.Mul(x, x.T())
	alpha, err := solveDual(&gram, c.Lambda, targets)
	if err != nil {
		return err
	}
	c.train = mat.DenseCopyOf(x)
	c.alpha = alpha
	c.neg, c.pos = neg, pos
	return nil
}

func (c *RidgeClassifier) Accuracy(x mat.Matrix, y []int) (float64, error) {
	if c.alpha == nil {
		return 0, errors.New("classifier is not fitted")
	}
	var cross mat.Dense
	cross.Mul(x, c.train.T())
	n, _ := x.Dims()
	scores := mat.NewVecDense(n, nil)
	scores.MulVec(&cross, c.alpha)
	return decide(scores, c.neg, c.pos, y), nil
}

// KernelRidgeClassifier is the precomputed-kernel variant: Fit takes the
// train-by-train kernel block and Accuracy the test-by-train block.
type KernelRidgeClassifier struct {
	Lambda float64

	alpha    *mat.VecDense
	neg, pos int
}

func NewKernelRidgeClassifier(lambda float64) *KernelRidgeClassifier {
	return &KernelRidgeClassifier{Lambda: lambda}
}

func (c *KernelRidgeClassifier) PrecomputedKernel() bool { return true }

func (c *KernelRidgeClassifier) Fit(k mat.Matrix, y []int) error {
	neg, pos, targets, err := classTargets(y)
	if err != nil {
		return err
	}
	alpha, err := solveDual(k, c.Lambda, targets)
	if err != nil {
		return err
	}
	c.alpha = alpha
	c.neg, c.pos = neg, pos
	return nil
}

func (c *KernelRidgeClassifier) Accuracy(k mat.Matrix, y []int) (float64, error) {
	if c.alpha == nil {
		return 0, errors.New("classifier is not fitted")
	}
	n, _ := k.Dims()
	scores := mat.NewVecDense(n, nil)
	scores.MulVec(k, c.alpha)
	return decide(scores, c.neg, c.pos, y), nil
}
