package ops

import "github.com/drift-ml/drift/internal/tensor"

// SumDimOp represents a sum reduction along a single dimension.
//
// Backward pass: every element of the reduced dimension contributed with
// weight 1, so the output gradient is expanded back along that dimension.
type SumDimOp struct {
	inputs  []*tensor.RawTensor
	output  *tensor.RawTensor
	dim     int // normalized, non-negative
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp. dim must already be normalized.
func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		inputs:  []*tensor.RawTensor{input},
		output:  output,
		dim:     dim,
		keepDim: keepDim,
	}
}

// Backward expands the output gradient along the reduced dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := expandReduced(outputGrad, op.inputs[0].Shape(), op.dim, op.keepDim, backend)
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *SumDimOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the reduced tensor.
func (op *SumDimOp) Output() *tensor.RawTensor {
	return op.output
}

// expandReduced restores a reduced gradient to the pre-reduction shape.
// When keepDim was false, the squeezed dimension is reinserted as size 1
// first so broadcasting aligns correctly.
func expandReduced(grad *tensor.RawTensor, inputShape tensor.Shape, dim int, keepDim bool, backend tensor.Backend) *tensor.RawTensor {
	if !keepDim {
		kept := inputShape.Clone()
		kept[dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	return broadcastTo(grad, inputShape, backend)
}
