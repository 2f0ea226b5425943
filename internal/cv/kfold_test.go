package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStratifiedKFoldBalanced(t *testing.T) {
	labels := []int{0, 1, 0, 1, 0, 1, 0, 1}
	folds, err := StratifiedKFold(labels, 2)
	require.NoError(t, err)
	require.Len(t, folds, 2)
	assert.Equal(t, []int{0, 1, 2, 3}, folds[0])
	assert.Equal(t, []int{4, 5, 6, 7}, folds[1])
}

func TestStratifiedKFoldDeterministic(t *testing.T) {
	labels := []int{1, 1, 0, 0, 1, 0, 1, 0, 1, 0}
	a, err := StratifiedKFold(labels, 3)
	require.NoError(t, err)
	b, err := StratifiedKFold(labels, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStratifiedKFoldCoverage(t *testing.T) {
	labels := []int{0, 0, 1, 1, 2, 2, 0, 1, 2, 0, 1, 2}
	folds, err := StratifiedKFold(labels, 4)
	require.NoError(t, err)

	seen := make(map[int]int)
	for _, fold := range folds {
		for _, i := range fold {
			seen[i]++
		}
	}
	require.Len(t, seen, len(labels), "every sample appears in exactly one test fold")
	for i, n := range seen {
		assert.Equal(t, 1, n, "sample %d", i)
	}
}

func TestStratifiedKFoldPreservesClassMix(t *testing.T) {
	// 6 of class 0, 3 of class 1, k=3: every fold gets 2 and 1.
	labels := []int{0, 0, 1, 0, 0, 1, 0, 0, 1}
	folds, err := StratifiedKFold(labels, 3)
	require.NoError(t, err)
	for f, fold := range folds {
		var zeros, ones int
		for _, i := range fold {
			if labels[i] == 0 {
				zeros++
			} else {
				ones++
			}
		}
		assert.Equal(t, 2, zeros, "fold %d", f)
		assert.Equal(t, 1, ones, "fold %d", f)
	}
}

func TestStratifiedKFoldUnevenSplit(t *testing.T) {
	// 5 of one class into 2 folds: first fold gets the extra sample.
	labels := []int{0, 0, 0, 0, 0}
	folds, err := StratifiedKFold(labels, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, folds[0])
	assert.Equal(t, []int{3, 4}, folds[1])
}

func TestStratifiedKFoldErrors(t *testing.T) {
	_, err := StratifiedKFold([]int{0, 1, 0, 1}, 1)
	assert.Error(t, err, "fewer than 2 folds")

	_, err = StratifiedKFold([]int{0, 0, 0, 1}, 2)
	assert.Error(t, err, "class smaller than fold count")
}

func TestComplement(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, complement([]int{1, 3}, 5))
	assert.Equal(t, []int{0, 1, 2}, complement(nil, 3))
	assert.Empty(t, complement([]int{0, 1}, 2))
}
