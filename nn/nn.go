// Copyright 2025 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks: layers, activations
// and parameter management.
package nn

import (
	"github.com/drift-ml/drift/internal/nn"
	"github.com/drift-ml/drift/internal/tensor"
)

// Module defines the common interface for all neural network modules.
type Module[T tensor.DType, B tensor.Backend] = nn.Module[T, B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[T tensor.DType, B tensor.Backend] = nn.Parameter[T, B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[T tensor.DType, B tensor.Backend](name string, t *tensor.Tensor[T, B]) *Parameter[T, B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[T tensor.DType, B tensor.Backend] = nn.Linear[T, B]

// LinearConfig configures a Linear layer.
type LinearConfig = nn.LinearConfig

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	layer := nn.NewLinear[float32](backend, 784, 128, nn.LinearConfig{})
func NewLinear[T tensor.DType, B tensor.Backend](backend B, inFeatures, outFeatures int, cfg LinearConfig) *Linear[T, B] {
	return nn.NewLinear[T](backend, inFeatures, outFeatures, cfg)
}

// Activations

// ReLU is the rectified linear unit activation module.
type ReLU[T tensor.DType, B tensor.Backend] = nn.ReLU[T, B]

// NewReLU creates a ReLU module.
func NewReLU[T tensor.DType, B tensor.Backend]() *ReLU[T, B] {
	return nn.NewReLU[T, B]()
}

// Tanh is the hyperbolic tangent activation module.
type Tanh[T tensor.DType, B tensor.Backend] = nn.Tanh[T, B]

// NewTanh creates a Tanh module.
func NewTanh[T tensor.DType, B tensor.Backend]() *Tanh[T, B] {
	return nn.NewTanh[T, B]()
}

// Containers

// Sequential chains modules, feeding each one's output to the next.
type Sequential[T tensor.DType, B tensor.Backend] = nn.Sequential[T, B]

// NewSequential creates a Sequential from the given modules in order.
func NewSequential[T tensor.DType, B tensor.Backend](modules ...Module[T, B]) *Sequential[T, B] {
	return nn.NewSequential(modules...)
}

// Initializers

// XavierUniform returns a [fanIn, fanOut] tensor with Xavier/Glorot uniform
// initialization.
func XavierUniform[T tensor.DType, B tensor.Backend](backend B, fanIn, fanOut int) *tensor.Tensor[T, B] {
	return nn.XavierUniform[T](backend, fanIn, fanOut)
}

// HeUniform returns a [fanIn, fanOut] tensor with He uniform
// initialization, suited to ReLU layers.
func HeUniform[T tensor.DType, B tensor.Backend](backend B, fanIn, fanOut int) *tensor.Tensor[T, B] {
	return nn.HeUniform[T](backend, fanIn, fanOut)
}
