// Package cv scores voxels by stratified k-fold cross-validation of their
// normalized correlation profiles against a pluggable classifier.
package cv

import (
	"fmt"
	"sort"
)

// StratifiedKFold splits the label sequence into k test folds without
// shuffling: each class's occurrences are taken in label order and dealt
// into k contiguous groups, the first len%k groups one element larger. The
// assignment is fully deterministic given the label order.
func StratifiedKFold(labels []int, k int) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("fold count must be at least 2, got %d", k)
	}
	byClass := make(map[int][]int)
	var classes []int
	for i, l := range labels {
		if _, seen := byClass[l]; !seen {
			classes = append(classes, l)
		}
		byClass[l] = append(byClass[l], i)
	}
	sort.Ints(classes)
	for _, c := range classes {
		if len(byClass[c]) < k {
			return nil, fmt.Errorf("class %d has %d members, fewer than %d folds", c, len(byClass[c]), k)
		}
	}
	folds := make([][]int, k)
	for _, c := range classes {
		idx := byClass[c]
		base, extra := len(idx)/k, len(idx)%k
		pos := 0
		for f := 0; f < k; f++ {
			n := base
			if f < extra {
				n++
			}
			folds[f] = append(folds[f], idx[pos:pos+n]...)
			pos += n
		}
	}
	for f := range folds {
		sort.Ints(folds[f])
	}
	return folds, nil
}

// complement returns all indices in [0, n) not present in the sorted test
// fold, in ascending order.
func complement(test []int, n int) []int {
	train := make([]int, 0, n-len(test))
	t := 0
	for i := 0; i < n; i++ {
		if t < len(test) && test[t] == i {
			t++
			continue
		}
		train = append(train, i)
	}
	return train
}
