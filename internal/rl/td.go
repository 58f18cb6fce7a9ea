package rl

import (
	"fmt"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/tensor"
)

// TDExtra carries the intermediate quantities of the TD loss.
type TDExtra[T tensor.DType, B tensor.Backend] struct {
	// Target is the bootstrapped value target r + pcont * vT, shape
	// [batch]. It is treated as a constant by the loss.
	Target *tensor.Tensor[T, B]

	// TDError is target - vTm1, shape [batch].
	TDError *tensor.Tensor[T, B]
}

// TDOutput is the result of the temporal difference loss.
type TDOutput[T tensor.DType, B tensor.Backend] struct {
	// Loss is the per-batch squared TD error, 0.5 * tdError², shape
	// [batch].
	Loss *tensor.Tensor[T, B]

	Extra TDExtra[T, B]
}

// TDLearning builds the one-step temporal difference loss for state value
// estimation:
//
//	loss_b = 0.5 * (r_b + pcont_b * vT_b - vTm1_b)²
//
// All inputs have shape [batch]. The bootstrap target is treated as a
// constant, so a backward pass updates the network behind vTm1 but not the
// one behind vT. pcont is the per-transition continuation probability
// (discount, zero at episode ends).
func TDLearning[T tensor.DType, B autodiff.BackwardCapable](vTm1, r, pcont, vT *tensor.Tensor[T, B]) (*TDOutput[T, B], error) {
	for _, in := range []struct {
		name string
		t    *tensor.Tensor[T, B]
	}{
		{"v_tm1", vTm1},
		{"r", r},
		{"pcont", pcont},
		{"v_t", vT},
	} {
		if len(in.t.Shape()) != 1 || in.t.Shape()[0] != vTm1.Shape()[0] {
			return nil, fmt.Errorf("TDLearning: %s must have shape %v, got %v: %w",
				in.name, vTm1.Shape(), in.t.Shape(), ErrInvalidArgument)
		}
	}

	backend := vTm1.Backend()
	tape := backend.GetTape()

	// Bootstrap target, formed off the tape and detached so no gradient
	// reaches the network behind vT.
	wasRecording := tape.IsRecording()
	tape.StopRecording()
	target := r.Add(pcont.Mul(vT)).Detach()
	if wasRecording {
		tape.StartRecording()
	}

	tdError := target.Sub(vTm1)
	loss := tdError.Mul(tdError).MulScalar(T(0.5))

	return &TDOutput[T, B]{
		Loss: loss,
		Extra: TDExtra[T, B]{
			Target:  target,
			TDError: tdError,
		},
	}, nil
}
