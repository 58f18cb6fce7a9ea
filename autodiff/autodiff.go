// Copyright 2025 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
//
//	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
//	y := x.Mul(x).Sum() // Operations recorded on tape
//
//	grads, _ := autodiff.Backward(y)
//	dx := grads[x.Raw()] // [2, 4]
package autodiff

import (
	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is the interface for backends that support
// backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients of t with respect to every recorded tensor it
// depends on, seeded with ones.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B]) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	return autodiff.Backward(t)
}

// Grad extracts the gradient for a tensor from a gradient map, or nil when
// the tensor received no gradient.
func Grad[T tensor.DType, B tensor.Backend](grads map[*tensor.RawTensor]*tensor.RawTensor, t *tensor.Tensor[T, B]) *tensor.RawTensor {
	return autodiff.Grad(grads, t)
}
