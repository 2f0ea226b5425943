package core

import (
	"errors"
	"fmt"
)

// ErrZeroVoxels is returned when a dataset contains no voxels at all; there
// is nothing to select from and the run is rejected before any scheduling.
var ErrZeroVoxels = errors.New("dataset has zero voxels")

// Dataset is the replicated, read-only input of one selection run: one
// activity matrix per subject-epoch, one condition label per epoch.
//
// Invariants enforced at construction:
//   - every matrix has the same, non-zero voxel count
//   - len(Labels) equals the number of epochs
//   - epochs belonging to one subject are adjacent and every subject has
//     exactly EpochsPerSubject of them
type Dataset struct {
	Matrices         []ActivityMatrix
	Labels           []int
	EpochsPerSubject int
}

func NewDataset(matrices []ActivityMatrix, labels []int, epochsPerSubject int) (*Dataset, error) {
	if len(matrices) == 0 {
		return nil, errors.New("dataset has no activity matrices")
	}
	voxels := matrices[0].Voxels
	if voxels == 0 {
		return nil, ErrZeroVoxels
	}
	for i, m := range matrices {
		if m.Voxels != voxels {
			return nil, fmt.Errorf("matrix %d has %d voxels, expected %d", i, m.Voxels, voxels)
		}
	}
	if len(labels) != len(matrices) {
		return nil, fmt.Errorf("got %d labels for %d epochs", len(labels), len(matrices))
	}
	if epochsPerSubject <= 0 {
		return nil, fmt.Errorf("epochs per subject must be positive, got %d", epochsPerSubject)
	}
	if len(matrices)%epochsPerSubject != 0 {
		return nil, fmt.Errorf("%d epochs not divisible by %d epochs per subject", len(matrices), epochsPerSubject)
	}
	return &Dataset{
		Matrices:         matrices,
		Labels:           labels,
		EpochsPerSubject: epochsPerSubject,
	}, nil
}

// Epochs returns the total epoch count across all subjects.
func (d *Dataset) Epochs() int { return len(d.Matrices) }

func (d *Dataset) Voxels() int { return d.Matrices[0].Voxels }

func (d *Dataset) Subjects() int { return len(d.Matrices) / d.EpochsPerSubject }
