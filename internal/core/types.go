// Package core defines the shared data model for correlation-based voxel
// selection: replicated activity data, chunk descriptors, correlation
// tensors, and per-voxel score records.
package core

import "fmt"

// ActivityMatrix holds the activity of one subject-epoch as a row-major
// [Rows x Voxels] block. Values are expected to be standardized so that a
// column dot product yields a Pearson correlation coefficient.
type ActivityMatrix struct {
	Rows   int
	Voxels int
	Data   []float32
}

func NewActivityMatrix(rows, voxels int, data []float32) (ActivityMatrix, error) {
	if rows <= 0 || voxels <= 0 {
		return ActivityMatrix{}, fmt.Errorf("activity matrix dims must be positive, got %dx%d", rows, voxels)
	}
	if len(data) != rows*voxels {
		return ActivityMatrix{}, fmt.Errorf("activity matrix data length %d does not match %dx%d", len(data), rows, voxels)
	}
	return ActivityMatrix{Rows: rows, Voxels: voxels, Data: data}, nil
}

func (m ActivityMatrix) At(r, v int) float32 {
	return m.Data[r*m.Voxels+v]
}

// Chunk is a contiguous half-open range of voxel indices assigned to one
// worker for one round.
type Chunk struct {
	Start int
	Count int
}

func (c Chunk) End() int { return c.Start + c.Count }

// ScoreRecord is the cross-validation accuracy of one voxel's correlation
// profile.
type ScoreRecord struct {
	Voxel    int     `json:"voxel"`
	Accuracy float64 `json:"accuracy"`
}
