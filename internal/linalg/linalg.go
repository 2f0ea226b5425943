// Package linalg is the single place that touches the dense float32 BLAS
// kernels. It exposes exactly the two products the selection pipeline needs
// and leaves all arithmetic to gonum; callers own the output storage and
// the offset/stride bookkeeping stays here.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Correlate writes alpha * sub(A)^T * A into dst, where A is the row-major
// rows x cols activity block in data and sub(A) is its column range
// [start, start+count). The result is count x cols with leading dimension
// ldDst, so one call can target a single epoch slot inside a larger tensor.
//
// Dimension mismatches are precondition violations and panic.
func Correlate(data []float32, rows, cols, start, count int, alpha float32, dst []float32, ldDst int) {
	if start < 0 || count < 0 || start+count > cols {
		panic(fmt.Sprintf("linalg: column range [%d,%d) out of %d columns", start, start+count, cols))
	}
	if ldDst < cols {
		panic(fmt.Sprintf("linalg: output stride %d shorter than %d columns", ldDst, cols))
	}
	if count == 0 {
		return
	}
	sub := blas32.General{Rows: rows, Cols: count, Stride: cols, Data: data[start:]}
	full := blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
	out := blas32.General{Rows: count, Cols: cols, Stride: ldDst, Data: dst}
	blas32.Gemm(blas.Trans, blas.NoTrans, alpha, sub, full, 0, out)
}

// LinearKernel writes the rows x rows inner-product matrix X * X^T into dst,
// where X is the row-major rows x cols block in x. The rank-k update fills
// the lower triangle; the upper triangle is mirrored so dst holds the full
// symmetric matrix.
func LinearKernel(x []float32, rows, cols int, dst []float32) {
	if len(x) < rows*cols {
		panic(fmt.Sprintf("linalg: kernel input length %d shorter than %dx%d", len(x), rows, cols))
	}
	if len(dst) < rows*rows {
		panic(fmt.Sprintf("linalg: kernel output length %d shorter than %dx%d", len(dst), rows, rows))
	}
	a := blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: x}
	c := blas32.Symmetric{Uplo: blas.Lower, N: rows, Stride: rows, Data: dst}
	blas32.Syrk(blas.NoTrans, 1, a, 0, c)
	for i := 0; i < rows; i++ {
		for j := i + 1; j < rows; j++ {
			dst[i*rows+j] = dst[j*rows+i]
		}
	}
}
