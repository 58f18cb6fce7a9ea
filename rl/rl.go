// Copyright 2025 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package rl provides reinforcement learning loss functions.
//
// Losses are built so that a backward pass through them updates only the
// intended network: policy losses stop gradients at value targets, and
// value losses stop gradients at bootstrap targets.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	aMax := actor.Forward(state)
//	qMax := critic.Forward(aMax).SumDim(-1, false)
//
//	out, err := rl.DPG(qMax, aMax, rl.DPGConfig{})
//	grads, _ := autodiff.Backward(out.Loss) // reaches only the actor
package rl

import (
	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/rl"
	"github.com/drift-ml/drift/internal/tensor"
)

// Errors

// ErrInvalidGraph indicates a required gradient dependency is missing.
var ErrInvalidGraph = rl.ErrInvalidGraph

// ErrInvalidArgument indicates a malformed input.
var ErrInvalidArgument = rl.ErrInvalidArgument

// Deterministic policy gradient

// DPGConfig configures the deterministic policy gradient loss.
type DPGConfig = rl.DPGConfig

// DPGExtra carries the intermediate quantities of the DPG loss.
type DPGExtra[T tensor.DType, B tensor.Backend] = rl.DPGExtra[T, B]

// DPGOutput is the result of the DPG loss.
type DPGOutput[T tensor.DType, B tensor.Backend] = rl.DPGOutput[T, B]

// DPG builds the deterministic policy gradient actor loss from a value
// estimate qMax of shape [batch] and the actions aMax of shape
// [batch, actionDim] it was computed from. See internal/rl for the full
// contract.
func DPG[T tensor.DType, B autodiff.BackwardCapable](qMax, aMax *tensor.Tensor[T, B], cfg DPGConfig) (*DPGOutput[T, B], error) {
	return rl.DPG(qMax, aMax, cfg)
}

// Temporal difference learning

// TDExtra carries the intermediate quantities of the TD loss.
type TDExtra[T tensor.DType, B tensor.Backend] = rl.TDExtra[T, B]

// TDOutput is the result of the TD loss.
type TDOutput[T tensor.DType, B tensor.Backend] = rl.TDOutput[T, B]

// TDLearning builds the one-step temporal difference loss
// 0.5*(r + pcont*vT - vTm1)² with the bootstrap target held constant. All
// inputs have shape [batch].
func TDLearning[T tensor.DType, B autodiff.BackwardCapable](vTm1, r, pcont, vT *tensor.Tensor[T, B]) (*TDOutput[T, B], error) {
	return rl.TDLearning(vTm1, r, pcont, vT)
}
