// Package norm applies within-subject normalization to correlation tensors:
// a Fisher variance-stabilizing transform followed by a z-score across each
// subject's epochs, making the values approximately classification-ready.
//
// Two interchangeable backends exist. Accelerated is the hot-path form;
// Reference is the portable form kept for verification. Their outputs must
// agree within floating-point tolerance.
package norm

import (
	"math"

	"github.com/corticalabs/fcma/internal/core"
)

// Normalizer mutates a correlation tensor in place. The epoch axis is
// treated as contiguous per-subject blocks of epochsPerSubject entries; the
// z-score is computed within each block using the population standard
// deviation. Any non-finite result (zero-variance block, correlation of
// exactly +/-1) becomes zero.
type Normalizer interface {
	Normalize(t *core.CorrelationTensor, epochsPerSubject int)
}

// fisher is the variance-stabilizing transform: it maps a correlation
// coefficient in [-1, 1] to an unbounded, approximately normal quantity.
func fisher(r float64) float64 {
	return 0.5 * math.Log((1+r)/(1-r))
}
