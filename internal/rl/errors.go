// Package rl implements reinforcement learning loss functions on top of the
// tensor and autodiff packages. Losses return per-batch loss tensors plus
// the intermediate quantities useful for logging, and are built so that a
// backward pass through the loss updates only the intended network.
package rl

import "errors"

// Sentinel errors returned by loss constructors. Callers match them with
// errors.Is.
var (
	// ErrInvalidGraph indicates a required gradient dependency is missing,
	// e.g. a value estimate that is not a function of the action.
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrInvalidArgument indicates a malformed input, e.g. a wrong tensor
	// rank or a non-positive clipping magnitude.
	ErrInvalidArgument = errors.New("invalid argument")
)
