package optim

import (
	"github.com/drift-ml/drift/internal/nn"
	"github.com/drift-ml/drift/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
type SGD[T tensor.DType, B tensor.Backend] struct {
	params   []*nn.Parameter[T, B]
	lr       float64
	momentum float64
	velocity [][]T // per-parameter velocity, allocated lazily
}

// SGDConfig configures an SGD optimizer. The zero value of Momentum means
// plain gradient descent.
type SGDConfig struct {
	LearningRate float64
	Momentum     float64
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], cfg SGDConfig) *SGD[T, B] {
	lr := cfg.LearningRate
	if lr == 0 {
		lr = 0.01
	}
	return &SGD[T, B]{
		params:   params,
		lr:       lr,
		momentum: cfg.Momentum,
	}
}

// Step applies one descent update: p -= lr * g, with momentum when
// configured.
func (s *SGD[T, B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	if s.momentum != 0 && s.velocity == nil {
		s.velocity = make([][]T, len(s.params))
	}

	for i, p := range s.params {
		g := gradData(grads, p)
		if g == nil {
			continue
		}
		data := p.Data()

		if s.momentum == 0 {
			for j := range data {
				data[j] -= T(s.lr * float64(g[j]))
			}
			continue
		}

		if s.velocity[i] == nil {
			s.velocity[i] = make([]T, len(data))
		}
		v := s.velocity[i]
		for j := range data {
			v[j] = T(s.momentum*float64(v[j]) + float64(g[j]))
			data[j] -= T(s.lr * float64(v[j]))
		}
	}
}

// Parameters returns the managed parameters.
func (s *SGD[T, B]) Parameters() []*nn.Parameter[T, B] {
	return s.params
}
