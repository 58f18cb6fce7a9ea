// Package autodiff provides tape-based reverse-mode automatic
// differentiation as a decorator over any tensor backend.
//
// AutodiffBackend wraps a backend and records each differentiable operation
// on a GradientTape. Calling Backward replays the tape in reverse to
// produce gradients for every tensor the output depends on.
package autodiff

import (
	"fmt"

	"github.com/drift-ml/drift/internal/autodiff/ops"
	"github.com/drift-ml/drift/internal/tensor"
)

// AutodiffBackend wraps a tensor backend with gradient recording. It
// implements tensor.Backend, so tensors built on it can be used anywhere a
// plain backend works, and additionally supports Backward.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an autodiff wrapper around the given backend with a fresh
// recording tape.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: inner,
		tape:  NewGradientTape(),
	}
}

// Inner returns the wrapped backend.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// GetTape returns the gradient tape.
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return fmt.Sprintf("autodiff(%s)", b.inner.Name())
}

// Device returns the wrapped backend's device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// pin marks tensors as shared for the duration of the inner call. The
// Backend contract lets an implementation write into a unique buffer, and
// earlier recorded operations keep referencing their operands even while
// recording is paused, so pinning applies to every call, not just recorded
// ones.
func (b *AutodiffBackend[B]) pin(ts ...*tensor.RawTensor) func() {
	restores := make([]func(), len(ts))
	for i, t := range ts {
		restores[i] = t.ForceNonUnique()
	}
	return func() {
		for _, r := range restores {
			r()
		}
	}
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x, y)()
	out := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, out))
	return out
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x, y)()
	out := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, out))
	return out
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x, y)()
	out := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, out))
	return out
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x, y)()
	out := b.inner.Div(x, y)
	b.tape.Record(ops.NewDivOp(x, y, out))
	return out
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x, y)()
	out := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMulOp(x, y, out))
	return out
}

// Reshape changes the tensor's shape and records the operation.
func (b *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.Reshape(x, shape)
	b.tape.Record(ops.NewReshapeOp(x, out))
	return out
}

// Transpose permutes the tensor's axes and records the operation.
func (b *AutodiffBackend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.Transpose(x, axes...)
	b.tape.Record(ops.NewTransposeOp(x, out, axes))
	return out
}

// AddScalar adds a scalar to every element and records the operation.
func (b *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.AddScalar(x, scalar)
	b.tape.Record(ops.NewAddScalarOp(x, out))
	return out
}

// MulScalar multiplies every element by a scalar and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.MulScalar(x, scalar)
	b.tape.Record(ops.NewMulScalarOp(x, out, scalarToFloat64(scalar)))
	return out
}

// Sqrt computes the element-wise square root and records the operation.
func (b *AutodiffBackend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.Sqrt(x)
	b.tape.Record(ops.NewSqrtOp(x, out))
	return out
}

// Tanh computes the element-wise hyperbolic tangent and records the
// operation.
func (b *AutodiffBackend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.Tanh(x)
	b.tape.Record(ops.NewTanhOp(x, out))
	return out
}

// ReLU computes the element-wise rectified linear unit and records the
// operation.
func (b *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.ReLU(x)
	b.tape.Record(ops.NewReLUOp(x, out))
	return out
}

// Clamp limits values to [lo, hi]. Clamping is a value transformation
// applied to already-computed gradients, so it is intentionally not
// recorded on the tape.
func (b *AutodiffBackend[B]) Clamp(x *tensor.RawTensor, lo, hi float64) *tensor.RawTensor {
	defer b.pin(x)()
	return b.inner.Clamp(x, lo, hi)
}

// ClipByNorm rescales rows whose L2 norm exceeds maxNorm. Like Clamp, it
// is a value transformation and is not recorded on the tape.
func (b *AutodiffBackend[B]) ClipByNorm(x *tensor.RawTensor, maxNorm float64) *tensor.RawTensor {
	defer b.pin(x)()
	return b.inner.ClipByNorm(x, maxNorm)
}

// Sum reduces the tensor to a scalar and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	defer b.pin(x)()
	out := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, out))
	return out
}

// SumDim reduces along a dimension and records the operation.
func (b *AutodiffBackend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	defer b.pin(x)()
	norm := x.Shape().NormalizeDim(dim)
	out := b.inner.SumDim(x, norm, keepDim)
	b.tape.Record(ops.NewSumDimOp(x, out, norm, keepDim))
	return out
}

// MeanDim averages along a dimension and records the operation.
func (b *AutodiffBackend[B]) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	defer b.pin(x)()
	norm := x.Shape().NormalizeDim(dim)
	out := b.inner.MeanDim(x, norm, keepDim)
	b.tape.Record(ops.NewMeanDimOp(x, out, norm, keepDim))
	return out
}

func scalarToFloat64(s any) float64 {
	switch v := s.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	default:
		panic(fmt.Sprintf("autodiff: unsupported scalar type %T", s))
	}
}
