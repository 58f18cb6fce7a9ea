// Package nn provides neural network building blocks layered on the tensor
// and autodiff packages. Modules built here are generic over dtype and
// backend; running them on an autodiff backend makes them trainable.
package nn

import "github.com/drift-ml/drift/internal/tensor"

// Module is the interface implemented by all network components.
type Module[T tensor.DType, B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(x *tensor.Tensor[T, B]) *tensor.Tensor[T, B]

	// Parameters returns the module's trainable parameters.
	Parameters() []*Parameter[T, B]
}
