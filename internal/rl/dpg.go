package rl

import (
	"fmt"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/tensor"
)

// DPGConfig configures the deterministic policy gradient loss. The zero
// value disables clipping.
type DPGConfig struct {
	// DQDAClipping, when set, bounds the action-value gradient before it
	// enters the loss. Must be positive. Nil means no clipping.
	DQDAClipping *float64

	// ClipByNorm selects L2-norm clipping of each batch row instead of
	// componentwise clipping. Ignored when DQDAClipping is nil.
	ClipByNorm bool

	// Name labels the loss in error messages. Defaults to "DpgLearning".
	Name string
}

// DPGExtra carries the intermediate quantities of the loss.
type DPGExtra[T tensor.DType, B tensor.Backend] struct {
	// QMax is the value estimate the loss was built from, shape [batch].
	QMax *tensor.Tensor[T, B]

	// AMax is the action produced by the actor, shape [batch, actionDim].
	AMax *tensor.Tensor[T, B]

	// DQDA is the gradient of QMax with respect to AMax, after clipping,
	// shape [batch, actionDim].
	DQDA *tensor.Tensor[T, B]
}

// DPGOutput is the result of the deterministic policy gradient loss.
type DPGOutput[T tensor.DType, B tensor.Backend] struct {
	// Loss is the per-batch surrogate loss, shape [batch]. Backpropagating
	// it moves each action along DQDA, updating only the actor.
	Loss *tensor.Tensor[T, B]

	Extra DPGExtra[T, B]
}

// DPG builds the deterministic policy gradient actor loss.
//
// qMax is a value estimate of shape [batch] that must have been computed,
// on the recording backend, from the actions aMax of shape
// [batch, actionDim]. The loss is
//
//	loss_b = 0.5 * Σ_a (target_ba - aMax_ba)²
//
// with target = stopGradient(dqda + aMax) and dqda = ∂qMax/∂aMax. By
// construction ∂loss/∂aMax = -dqda, so minimizing the loss performs
// gradient ascent on the value estimate through the actor alone: the
// critic's parameters receive no gradient from this loss.
//
// Returns ErrInvalidGraph when qMax does not depend on aMax, and
// ErrInvalidArgument for malformed shapes or a non-positive clipping
// magnitude.
func DPG[T tensor.DType, B autodiff.BackwardCapable](qMax, aMax *tensor.Tensor[T, B], cfg DPGConfig) (*DPGOutput[T, B], error) {
	name := cfg.Name
	if name == "" {
		name = "DpgLearning"
	}

	if len(qMax.Shape()) != 1 {
		return nil, fmt.Errorf("%s: value estimate must have shape [batch], got %v: %w",
			name, qMax.Shape(), ErrInvalidArgument)
	}
	if len(aMax.Shape()) != 2 {
		return nil, fmt.Errorf("%s: action must have shape [batch, actionDim], got %v: %w",
			name, aMax.Shape(), ErrInvalidArgument)
	}
	if qMax.Shape()[0] != aMax.Shape()[0] {
		return nil, fmt.Errorf("%s: batch mismatch between value estimate %v and action %v: %w",
			name, qMax.Shape(), aMax.Shape(), ErrInvalidArgument)
	}
	if cfg.DQDAClipping != nil && *cfg.DQDAClipping <= 0 {
		return nil, fmt.Errorf("%s: dqda clipping must be positive, got %v: %w",
			name, *cfg.DQDAClipping, ErrInvalidArgument)
	}

	backend := qMax.Backend()

	// dqda = ∂qMax/∂aMax, seeded with ones over the batch. The walk pauses
	// recording, so none of this lands on the tape.
	grads, err := autodiff.Backward(qMax)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	dqdaRaw := grads[aMax.Raw()]
	if dqdaRaw == nil {
		return nil, fmt.Errorf("%s: value estimate must be a function of the action: %w",
			name, ErrInvalidGraph)
	}

	if cfg.DQDAClipping != nil {
		m := *cfg.DQDAClipping
		if cfg.ClipByNorm {
			dqdaRaw = backend.ClipByNorm(dqdaRaw, m)
		} else {
			dqdaRaw = backend.Clamp(dqdaRaw, -m, m)
		}
	}
	dqda := tensor.New[T, B](dqdaRaw, backend)

	// target = stopGradient(dqda + aMax). Formed off the tape, and
	// detached so the loss graph ends here instead of reaching back into
	// the critic.
	tape := backend.GetTape()
	wasRecording := tape.IsRecording()
	tape.StopRecording()
	target := dqda.Add(aMax).Detach()
	if wasRecording {
		tape.StartRecording()
	}

	// loss_b = 0.5 * Σ_a (target - aMax)², recorded so a backward pass
	// reaches the actor's parameters through aMax.
	diff := target.Sub(aMax)
	loss := diff.Mul(diff).SumDim(-1, false).MulScalar(T(0.5))

	return &DPGOutput[T, B]{
		Loss: loss,
		Extra: DPGExtra[T, B]{
			QMax: qMax,
			AMax: aMax,
			DQDA: dqda,
		},
	}, nil
}
