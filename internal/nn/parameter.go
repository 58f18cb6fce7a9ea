package nn

import "github.com/drift-ml/drift/internal/tensor"

// Parameter is a named trainable tensor. Optimizers update a parameter's
// buffer in place, so its identity stays stable across training steps and
// gradient lookups keyed by identity keep working.
type Parameter[T tensor.DType, B tensor.Backend] struct {
	name  string
	value *tensor.Tensor[T, B]
}

// NewParameter wraps a tensor as a named parameter.
func NewParameter[T tensor.DType, B tensor.Backend](name string, value *tensor.Tensor[T, B]) *Parameter[T, B] {
	return &Parameter[T, B]{name: name, value: value}
}

// Name returns the parameter's name.
func (p *Parameter[T, B]) Name() string {
	return p.name
}

// Value returns the underlying tensor.
func (p *Parameter[T, B]) Value() *tensor.Tensor[T, B] {
	return p.value
}

// Raw returns the underlying raw tensor, the identity used for gradient
// lookups.
func (p *Parameter[T, B]) Raw() *tensor.RawTensor {
	return p.value.Raw()
}

// Data returns the parameter's buffer for in-place updates.
func (p *Parameter[T, B]) Data() []T {
	return p.value.Data()
}
