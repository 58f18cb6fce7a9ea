package ops

import "github.com/drift-ml/drift/internal/tensor"

// MeanDimOp represents a mean reduction along a single dimension.
//
// Backward pass: like SumDimOp but each element contributed with weight 1/n
// where n is the size of the reduced dimension.
type MeanDimOp struct {
	inputs  []*tensor.RawTensor
	output  *tensor.RawTensor
	dim     int // normalized, non-negative
	keepDim bool
}

// NewMeanDimOp creates a new MeanDimOp. dim must already be normalized.
func NewMeanDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *MeanDimOp {
	return &MeanDimOp{
		inputs:  []*tensor.RawTensor{input},
		output:  output,
		dim:     dim,
		keepDim: keepDim,
	}
}

// Backward expands the scaled output gradient along the reduced dimension.
func (op *MeanDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inputShape := op.inputs[0].Shape()
	n := inputShape[op.dim]

	scaled := backend.MulScalar(outputGrad, 1.0/float64(n))
	grad := expandReduced(scaled, inputShape, op.dim, op.keepDim, backend)
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *MeanDimOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the reduced tensor.
func (op *MeanDimOp) Output() *tensor.RawTensor {
	return op.output
}
