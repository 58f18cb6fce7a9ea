package cpu

import (
	"fmt"
	"math"

	"github.com/drift-ml/drift/internal/tensor"
)

// Clamp limits each element to the range [lo, hi].
func (cpu *CPUBackend) Clamp(x *tensor.RawTensor, lo, hi float64) *tensor.RawTensor {
	if lo > hi {
		panic(fmt.Sprintf("clamp: lo %g greater than hi %g", lo, hi))
	}
	return cpu.unary("clamp", x, func(v float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	})
}

// ClipByNorm rescales each slice along the last dimension so its L2 norm
// does not exceed maxNorm. Slices with norm within the bound are copied
// unchanged, so directions are always preserved.
func (cpu *CPUBackend) ClipByNorm(x *tensor.RawTensor, maxNorm float64) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		panic("clipbynorm: scalar tensor has no dimension to clip over")
	}

	inner := shape[len(shape)-1]
	rows := x.NumElements() / inner
	result := newRaw(shape, x.DType(), cpu.device, "clipbynorm")

	switch x.DType() {
	case tensor.Float32:
		clipRows(result.AsFloat32(), x.AsFloat32(), rows, inner, maxNorm)
	case tensor.Float64:
		clipRows(result.AsFloat64(), x.AsFloat64(), rows, inner, maxNorm)
	}
	return result
}

func clipRows[T float32 | float64](dst, src []T, rows, inner int, maxNorm float64) {
	for r := 0; r < rows; r++ {
		row := src[r*inner : (r+1)*inner]
		out := dst[r*inner : (r+1)*inner]

		var sq float64
		for _, v := range row {
			sq += float64(v) * float64(v)
		}
		norm := math.Sqrt(sq)

		if norm <= maxNorm || norm == 0 {
			copy(out, row)
			continue
		}
		scale := T(maxNorm / norm)
		for i, v := range row {
			out[i] = v * scale
		}
	}
}
