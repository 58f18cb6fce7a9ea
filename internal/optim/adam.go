package optim

import (
	"math"

	"github.com/drift-ml/drift/internal/nn"
	"github.com/drift-ml/drift/internal/tensor"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2015) with bias
// correction. Moment buffers are kept as plain slices.
type Adam[T tensor.DType, B tensor.Backend] struct {
	params []*nn.Parameter[T, B]
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64

	step int
	m    [][]float64 // first moment
	v    [][]float64 // second moment
}

// AdamConfig configures an Adam optimizer. Zero values select the usual
// defaults: lr 0.001, beta1 0.9, beta2 0.999, eps 1e-8.
type AdamConfig struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64
}

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], cfg AdamConfig) *Adam[T, B] {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.001
	}
	if cfg.Beta1 == 0 {
		cfg.Beta1 = 0.9
	}
	if cfg.Beta2 == 0 {
		cfg.Beta2 = 0.999
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = 1e-8
	}

	a := &Adam[T, B]{
		params: params,
		lr:     cfg.LearningRate,
		beta1:  cfg.Beta1,
		beta2:  cfg.Beta2,
		eps:    cfg.Epsilon,
		m:      make([][]float64, len(params)),
		v:      make([][]float64, len(params)),
	}
	for i, p := range params {
		n := len(p.Data())
		a.m[i] = make([]float64, n)
		a.v[i] = make([]float64, n)
	}
	return a
}

// Step applies one Adam update with bias-corrected moment estimates.
func (a *Adam[T, B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.step++
	bc1 := 1 - math.Pow(a.beta1, float64(a.step))
	bc2 := 1 - math.Pow(a.beta2, float64(a.step))

	for i, p := range a.params {
		g := gradData(grads, p)
		if g == nil {
			continue
		}
		data := p.Data()
		m, v := a.m[i], a.v[i]

		for j := range data {
			gj := float64(g[j])
			m[j] = a.beta1*m[j] + (1-a.beta1)*gj
			v[j] = a.beta2*v[j] + (1-a.beta2)*gj*gj

			mHat := m[j] / bc1
			vHat := v[j] / bc2
			data[j] -= T(a.lr * mHat / (math.Sqrt(vHat) + a.eps))
		}
	}
}

// Parameters returns the managed parameters.
func (a *Adam[T, B]) Parameters() []*nn.Parameter[T, B] {
	return a.params
}
