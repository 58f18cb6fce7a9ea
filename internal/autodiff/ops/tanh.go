package ops

import "github.com/drift-ml/drift/internal/tensor"

// TanhOp represents an element-wise hyperbolic tangent: output = tanh(x).
//
// Backward pass: d(tanh(x))/dx = 1 - tanh²(x) = 1 - output²,
// so grad_x = outputGrad * (1 - output²).
type TanhOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{
		inputs: []*tensor.RawTensor{input},
		output: output,
	}
}

// Backward computes the input gradient using the saved output.
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	defer op.output.ForceNonUnique()()

	// 1 - output²
	sq := backend.Mul(op.output, op.output)
	deriv := backend.AddScalar(backend.MulScalar(sq, -1.0), 1.0)

	grad := backend.Mul(outputGrad, deriv)
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *TanhOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor tanh(x).
func (op *TanhOp) Output() *tensor.RawTensor {
	return op.output
}
