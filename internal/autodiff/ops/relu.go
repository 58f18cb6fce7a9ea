package ops

import "github.com/drift-ml/drift/internal/tensor"

// ReLUOp represents an element-wise rectified linear unit: output = max(x, 0).
//
// Backward pass: the gradient flows where x > 0 and is zero elsewhere.
// The subgradient at exactly zero is taken as zero.
type ReLUOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{
		inputs: []*tensor.RawTensor{input},
		output: output,
	}
}

// Backward masks the output gradient by the positive entries of the input.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]

	mask, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic("relu backward: failed to create mask tensor")
	}
	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := mask.AsFloat32()
		for i, v := range src {
			if v > 0 {
				dst[i] = 1
			}
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := mask.AsFloat64()
		for i, v := range src {
			if v > 0 {
				dst[i] = 1
			}
		}
	}

	grad := backend.Mul(outputGrad, mask)
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *ReLUOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor max(x, 0).
func (op *ReLUOp) Output() *tensor.RawTensor {
	return op.output
}
