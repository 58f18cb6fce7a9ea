// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"

	"github.com/drift-ml/drift/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binary applies an element-wise binary operation with broadcasting.
//
// The result is always a fresh tensor: operands are never written to, even
// when a buffer is unique. Callers hold operand references all over the
// place (tensor receivers, tape inputs, gradient maps), so writing into a
// unique buffer would alias values out from under them.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		result := newRaw(outShape, a.DType(), cpu.device, name)
		switch a.DType() {
		case tensor.Float32:
			binarySameShape(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), f32)
		case tensor.Float64:
			binarySameShape(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), f64)
		}
		return result
	}

	result := newRaw(outShape, a.DType(), cpu.device, name)
	switch a.DType() {
	case tensor.Float32:
		binaryBroadcast(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, f32)
	case tensor.Float64:
		binaryBroadcast(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, f64)
	}
	return result
}

// newRaw allocates a result tensor or panics with the op name.
func newRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device, name string) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	return result
}

func binarySameShape[T float32 | float64](dst, a, b []T, f func(x, y T) T) {
	for i := range dst {
		dst[i] = f(a[i], b[i])
	}
}

// binaryBroadcast applies f over broadcasted operands. Output coordinates are
// mapped back to each source by right-aligning the shapes and collapsing
// size-1 dimensions.
func binaryBroadcast[T float32 | float64](
	dst, a, b []T,
	aShape, bShape, outShape tensor.Shape,
	f func(x, y T) T,
) {
	aStrides := aShape.ComputeStrides()
	bStrides := bShape.ComputeStrides()
	outStrides := outShape.ComputeStrides()

	for i := range dst {
		aIdx, bIdx := 0, 0
		temp := i
		for d := 0; d < len(outShape); d++ {
			coord := temp / outStrides[d]
			temp %= outStrides[d]

			if ad := d - (len(outShape) - len(aShape)); ad >= 0 {
				c := coord
				if aShape[ad] == 1 {
					c = 0
				}
				aIdx += c * aStrides[ad]
			}
			if bd := d - (len(outShape) - len(bShape)); bd >= 0 {
				c := coord
				if bShape[bd] == 1 {
					c = 0
				}
				bIdx += c * bStrides[bd]
			}
		}
		dst[i] = f(a[aIdx], b[bIdx])
	}
}
