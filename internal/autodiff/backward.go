package autodiff

import (
	"fmt"

	"github.com/drift-ml/drift/internal/tensor"
)

// BackwardCapable is satisfied by backends that record a gradient tape,
// i.e. any AutodiffBackend. Code that needs differentiation (losses,
// optimizers, trainers) constrains its backend parameter with this
// interface instead of naming a concrete wrapper type.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// Backward computes gradients of t with respect to every recorded tensor it
// depends on, seeding the walk with ones. This is the usual entry point for
// scalar losses; for vector outputs it computes the gradient of the sum of
// the elements.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B]) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	backend := t.Backend()
	seed, err := onesLike(t.Raw())
	if err != nil {
		return nil, fmt.Errorf("autodiff: seeding backward pass: %w", err)
	}
	return backend.GetTape().Backward(t.Raw(), seed, backend), nil
}

// Grad extracts the gradient for a tensor from a gradient map, returning
// nil when the tensor received no gradient.
func Grad[T tensor.DType, B tensor.Backend](grads map[*tensor.RawTensor]*tensor.RawTensor, t *tensor.Tensor[T, B]) *tensor.RawTensor {
	return grads[t.Raw()]
}

func onesLike(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	out, err := tensor.NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		return nil, err
	}
	switch t.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	}
	return out, nil
}
