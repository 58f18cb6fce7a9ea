// Package ops defines operation interfaces and implementations for automatic
// differentiation.
//
// Each operation records its inputs and output during the forward pass and
// computes input gradients during the backward pass:
//   - AddOp/SubOp: gradient flows through unchanged (negated for b in Sub)
//   - MulOp: d(a*b)/da = b, d(a*b)/db = a
//   - MatMulOp: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - ReLUOp/TanhOp: masked / (1 - tanh²) scaling
//   - SumOp/SumDimOp/MeanDimOp: gradient broadcast back to the input shape
package ops

import "github.com/drift-ml/drift/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
