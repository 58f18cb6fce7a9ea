package ops

import "github.com/drift-ml/drift/internal/tensor"

// SumOp represents a full reduction to a scalar: output = Σ x.
//
// Backward pass: every input element contributed with weight 1, so each
// receives the scalar output gradient.
type SumOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		inputs: []*tensor.RawTensor{input},
		output: output,
	}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := broadcastTo(outputGrad, op.inputs[0].Shape(), backend)
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the scalar sum.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}
