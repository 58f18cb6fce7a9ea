package nn

import (
	"fmt"

	"github.com/drift-ml/drift/internal/tensor"
)

// Linear is a fully connected layer: y = x @ W + b.
//
// The weight has shape [inFeatures, outFeatures] and the bias [1,
// outFeatures] so it broadcasts over the batch dimension.
type Linear[T tensor.DType, B tensor.Backend] struct {
	weight *Parameter[T, B]
	bias   *Parameter[T, B] // nil when the layer has no bias
}

// LinearConfig configures a Linear layer. The zero value enables bias.
type LinearConfig struct {
	// NoBias disables the additive bias term.
	NoBias bool
	// Name prefixes the parameter names. Defaults to "linear".
	Name string
}

// NewLinear creates a Linear layer with Xavier-initialized weights and a
// zero bias.
func NewLinear[T tensor.DType, B tensor.Backend](backend B, inFeatures, outFeatures int, cfg LinearConfig) *Linear[T, B] {
	name := cfg.Name
	if name == "" {
		name = "linear"
	}

	l := &Linear[T, B]{
		weight: NewParameter(
			fmt.Sprintf("%s.weight", name),
			XavierUniform[T](backend, inFeatures, outFeatures),
		),
	}
	if !cfg.NoBias {
		l.bias = NewParameter(
			fmt.Sprintf("%s.bias", name),
			tensor.Zeros[T, B](tensor.Shape{1, outFeatures}, backend),
		)
	}
	return l
}

// Forward computes x @ W + b for a [batch, inFeatures] input.
func (l *Linear[T, B]) Forward(x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	out := x.MatMul(l.weight.Value())
	if l.bias != nil {
		out = out.Add(l.bias.Value())
	}
	return out
}

// Parameters returns the layer's weight and, when present, bias.
func (l *Linear[T, B]) Parameters() []*Parameter[T, B] {
	if l.bias == nil {
		return []*Parameter[T, B]{l.weight}
	}
	return []*Parameter[T, B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[T, B]) Weight() *Parameter[T, B] {
	return l.weight
}

// Bias returns the bias parameter, or nil when disabled.
func (l *Linear[T, B]) Bias() *Parameter[T, B] {
	return l.bias
}
