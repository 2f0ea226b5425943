package core

// CorrelationTensor holds the correlation profiles of one chunk: a row-major
// [Count x Epochs x Voxels] block where entry (i, e, v) is the correlation
// between chunk voxel Start+i and voxel v restricted to epoch e.
//
// Built by the correlation builder, normalized in place, read by the scorer,
// then discarded.
type CorrelationTensor struct {
	Start  int
	Count  int
	Epochs int
	Voxels int
	Data   []float32
}

func NewCorrelationTensor(start, count, epochs, voxels int) *CorrelationTensor {
	return &CorrelationTensor{
		Start:  start,
		Count:  count,
		Epochs: epochs,
		Voxels: voxels,
		Data:   make([]float32, count*epochs*voxels),
	}
}

// EpochSlice returns the [Epochs x Voxels] block of chunk voxel i.
func (t *CorrelationTensor) EpochSlice(i int) []float32 {
	n := t.Epochs * t.Voxels
	return t.Data[i*n : (i+1)*n]
}

// Row returns the correlation vector of chunk voxel i for epoch e.
func (t *CorrelationTensor) Row(i, e int) []float32 {
	off := (i*t.Epochs + e) * t.Voxels
	return t.Data[off : off+t.Voxels]
}

func (t *CorrelationTensor) At(i, e, v int) float32 {
	return t.Data[(i*t.Epochs+e)*t.Voxels+v]
}
