package core

import "math"

// StandardizeColumns z-scores every voxel column of m (population standard
// deviation) and scales by 1/sqrt(rows), so that the dot product of any two
// columns is their Pearson correlation coefficient. Zero-variance columns
// become all zeros. Returns a new matrix; m is untouched.
func StandardizeColumns(m ActivityMatrix) ActivityMatrix {
	out := ActivityMatrix{
		Rows:   m.Rows,
		Voxels: m.Voxels,
		Data:   make([]float32, len(m.Data)),
	}
	n := float64(m.Rows)
	for v := 0; v < m.Voxels; v++ {
		var sum, sumSq float64
		for r := 0; r < m.Rows; r++ {
			x := float64(m.At(r, v))
			sum += x
			sumSq += x * x
		}
		mean := sum / n
		variance := sumSq/n - mean*mean
		if variance <= 0 {
			continue
		}
		scale := 1 / (math.Sqrt(variance) * math.Sqrt(n))
		for r := 0; r < m.Rows; r++ {
			out.Data[r*m.Voxels+v] = float32((float64(m.At(r, v)) - mean) * scale)
		}
	}
	return out
}
