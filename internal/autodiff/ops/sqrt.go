package ops

import "github.com/drift-ml/drift/internal/tensor"

// SqrtOp represents an element-wise square root: output = sqrt(x).
//
// Backward pass: d(sqrt(x))/dx = 1/(2*sqrt(x)) = 0.5/output,
// so grad_x = outputGrad * 0.5 / output.
type SqrtOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(input, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{
		inputs: []*tensor.RawTensor{input},
		output: output,
	}
}

// Backward computes the input gradient using the saved output.
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer op.output.ForceNonUnique()()

	grad := backend.Div(outputGrad, op.output)
	grad = backend.MulScalar(grad, 0.5)
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *SqrtOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor sqrt(x).
func (op *SqrtOp) Output() *tensor.RawTensor {
	return op.output
}
