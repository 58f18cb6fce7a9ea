package cpu

import (
	"github.com/drift-ml/drift/internal/tensor"
)

// Sum computes the total sum of all elements as a scalar tensor (shape []).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := newRaw(tensor.Shape{}, x.DType(), cpu.device, "sum")

	switch x.DType() {
	case tensor.Float32:
		var s float32
		for _, v := range x.AsFloat32() {
			s += v
		}
		result.AsFloat32()[0] = s
	case tensor.Float64:
		var s float64
		for _, v := range x.AsFloat64() {
			s += v
		}
		result.AsFloat64()[0] = s
	}
	return result
}

// SumDim sums along a dimension. Negative dim counts from the end.
// When keepDim is true the reduced dimension stays with size 1.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)

	outShape := reducedShape(shape, dim, keepDim)
	result := newRaw(outShape, x.DType(), cpu.device, "sumdim")

	// Decompose the input as [outer, n, inner] around the reduced dim.
	outer, n, inner := 1, shape[dim], 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}

	switch x.DType() {
	case tensor.Float32:
		sumDim(result.AsFloat32(), x.AsFloat32(), outer, n, inner)
	case tensor.Float64:
		sumDim(result.AsFloat64(), x.AsFloat64(), outer, n, inner)
	}
	return result
}

// MeanDim averages along a dimension. Negative dim counts from the end.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	n := shape[shape.NormalizeDim(dim)]

	result := cpu.SumDim(x, dim, keepDim)
	switch result.DType() {
	case tensor.Float32:
		data := result.AsFloat32()
		inv := 1.0 / float32(n)
		for i := range data {
			data[i] *= inv
		}
	case tensor.Float64:
		data := result.AsFloat64()
		inv := 1.0 / float64(n)
		for i := range data {
			data[i] *= inv
		}
	}
	return result
}

// reducedShape drops or keeps the reduced dimension.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for i, d := range shape {
		if i != dim {
			out = append(out, d)
		}
	}
	return out
}

func sumDim[T float32 | float64](dst, src []T, outer, n, inner int) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var s T
			base := o * n * inner
			for j := 0; j < n; j++ {
				s += src[base+j*inner+i]
			}
			dst[o*inner+i] = s
		}
	}
}
