package nn

import "github.com/drift-ml/drift/internal/tensor"

// Sequential chains modules, feeding each one's output to the next.
type Sequential[T tensor.DType, B tensor.Backend] struct {
	modules []Module[T, B]
}

// NewSequential creates a Sequential from the given modules in order.
func NewSequential[T tensor.DType, B tensor.Backend](modules ...Module[T, B]) *Sequential[T, B] {
	return &Sequential[T, B]{modules: modules}
}

// Forward runs the input through every module in order.
func (s *Sequential[T, B]) Forward(x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	out := x
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters returns the concatenated parameters of all modules.
func (s *Sequential[T, B]) Parameters() []*Parameter[T, B] {
	var params []*Parameter[T, B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}
