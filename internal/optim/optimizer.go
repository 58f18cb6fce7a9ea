// Package optim provides gradient-based parameter optimizers.
//
// Optimizers consume the gradient map produced by a tape backward pass and
// update parameter buffers in place with plain slice arithmetic, so a step
// never records anything on an active tape and parameter identities stay
// stable.
package optim

import (
	"github.com/drift-ml/drift/internal/nn"
	"github.com/drift-ml/drift/internal/tensor"
)

// Optimizer updates parameters from a gradient map.
type Optimizer[T tensor.DType, B tensor.Backend] interface {
	// Step applies one update using the gradients in grads. Parameters
	// without a gradient entry are left unchanged.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// Parameters returns the parameters this optimizer manages.
	Parameters() []*nn.Parameter[T, B]
}

// gradData returns the gradient buffer for a parameter, or nil when the
// parameter received no gradient.
func gradData[T tensor.DType, B tensor.Backend](grads map[*tensor.RawTensor]*tensor.RawTensor, p *nn.Parameter[T, B]) []T {
	g, ok := grads[p.Raw()]
	if !ok {
		return nil
	}
	return tensor.RawData[T](g)
}
