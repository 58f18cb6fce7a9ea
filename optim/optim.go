// Copyright 2025 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based parameter optimizers.
package optim

import (
	"github.com/drift-ml/drift/internal/nn"
	"github.com/drift-ml/drift/internal/optim"
	"github.com/drift-ml/drift/internal/tensor"
)

// Optimizer defines the common interface for all optimizers.
type Optimizer[T tensor.DType, B tensor.Backend] = optim.Optimizer[T, B]

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[T tensor.DType, B tensor.Backend] = optim.SGD[T, B]

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(
//	    model.Parameters(),
//	    optim.SGDConfig{LearningRate: 0.01, Momentum: 0.9},
//	)
func NewSGD[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], cfg SGDConfig) *SGD[T, B] {
	return optim.NewSGD(params, cfg)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer with bias correction.
type Adam[T tensor.DType, B tensor.Backend] = optim.Adam[T, B]

// AdamConfig contains configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
//
// Example:
//
//	optimizer := optim.NewAdam(
//	    model.Parameters(),
//	    optim.AdamConfig{LearningRate: 0.001},
//	)
func NewAdam[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], cfg AdamConfig) *Adam[T, B] {
	return optim.NewAdam(params, cfg)
}
