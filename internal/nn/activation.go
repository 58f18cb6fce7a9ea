package nn

import "github.com/drift-ml/drift/internal/tensor"

// ReLU is a stateless rectified linear unit module.
type ReLU[T tensor.DType, B tensor.Backend] struct{}

// NewReLU creates a ReLU module.
func NewReLU[T tensor.DType, B tensor.Backend]() *ReLU[T, B] {
	return &ReLU[T, B]{}
}

// Forward applies max(x, 0) element-wise.
func (r *ReLU[T, B]) Forward(x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return x.ReLU()
}

// Parameters returns nil; ReLU has no trainable state.
func (r *ReLU[T, B]) Parameters() []*Parameter[T, B] {
	return nil
}

// Tanh is a stateless hyperbolic tangent module.
type Tanh[T tensor.DType, B tensor.Backend] struct{}

// NewTanh creates a Tanh module.
func NewTanh[T tensor.DType, B tensor.Backend]() *Tanh[T, B] {
	return &Tanh[T, B]{}
}

// Forward applies tanh element-wise.
func (t *Tanh[T, B]) Forward(x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return x.Tanh()
}

// Parameters returns nil; Tanh has no trainable state.
func (t *Tanh[T, B]) Parameters() []*Parameter[T, B] {
	return nil
}
