package autodiff

import (
	"github.com/drift-ml/drift/internal/autodiff/ops"
	"github.com/drift-ml/drift/internal/tensor"
)

// GradientTape records operations during the forward pass so they can be
// replayed in reverse to compute gradients.
//
// The tape is not safe for concurrent use; each goroutine doing autodiff
// should own its tape.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape creates a tape that starts recording immediately.
func NewGradientTape() *GradientTape {
	return &GradientTape{recording: true}
}

// Record appends an operation to the tape. No-op when recording is paused.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// IsRecording reports whether the tape is currently recording.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// StopRecording pauses recording. Operations executed while paused are
// treated as constants by Backward.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// StartRecording resumes recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// Reset discards all recorded operations and resumes recording.
func (t *GradientTape) Reset() {
	t.operations = t.operations[:0]
	t.recording = true
}

// NumOperations returns the number of recorded operations.
func (t *GradientTape) NumOperations() int {
	return len(t.operations)
}

// Backward walks the tape in reverse from output, accumulating gradients.
//
// The returned map holds a gradient for every recorded tensor that output
// depends on, keyed by tensor identity. Seeding is explicit: outputGrad is
// the gradient of the final objective with respect to output (pass ones for
// a plain derivative). If output was never recorded, the result contains
// only the seed entry.
//
// When a tensor feeds multiple downstream operations, its gradient is the
// sum of the contributions from each path, which is the standard
// reverse-mode convention.
//
// Recording is paused for the duration of the walk so that the backward
// computations themselves are not taped.
func (t *GradientTape) Backward(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[output] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]

		outGrad, ok := grads[op.Output()]
		if !ok {
			// This operation does not influence output.
			continue
		}

		inputGrads := op.Backward(outGrad, backend)
		for j, input := range op.Inputs() {
			if inputGrads[j] == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				func() {
					defer existing.ForceNonUnique()()
					grads[input] = backend.Add(existing, inputGrads[j])
				}()
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}
