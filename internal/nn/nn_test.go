package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/internal/nn"
	"github.com/drift-ml/drift/internal/tensor"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() adBackend {
	return autodiff.New(cpu.New())
}

func TestLinearForward(t *testing.T) {
	b := newBackend()

	l := nn.NewLinear[float32](b, 2, 3, nn.LinearConfig{})

	// Overwrite the random init with known values.
	copy(l.Weight().Data(), []float32{1, 2, 3, 4, 5, 6})
	copy(l.Bias().Data(), []float32{0.5, 0.5, 0.5})

	x, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2}, b)
	require.NoError(t, err)

	out := l.Forward(x)
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())
	assert.InDeltaSlice(t, []float32{5.5, 7.5, 9.5}, out.Data(), 1e-5)
}

func TestLinearNoBias(t *testing.T) {
	b := newBackend()

	l := nn.NewLinear[float32](b, 2, 2, nn.LinearConfig{NoBias: true})
	assert.Nil(t, l.Bias())
	assert.Len(t, l.Parameters(), 1)
}

func TestLinearParameterNames(t *testing.T) {
	b := newBackend()

	l := nn.NewLinear[float32](b, 2, 2, nn.LinearConfig{Name: "actor"})
	params := l.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "actor.weight", params[0].Name())
	assert.Equal(t, "actor.bias", params[1].Name())
}

func TestLinearGradients(t *testing.T) {
	b := newBackend()

	l := nn.NewLinear[float32](b, 2, 1, nn.LinearConfig{})
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)

	loss := l.Forward(x).Sum()
	grads, err := autodiff.Backward(loss)
	require.NoError(t, err)

	// grad_W = xᵀ @ ones = column sums; grad_b = batch size.
	gw := grads[l.Weight().Raw()]
	require.NotNil(t, gw)
	assert.InDeltaSlice(t, []float32{4, 6}, gw.AsFloat32(), 1e-5)

	gb := grads[l.Bias().Raw()]
	require.NotNil(t, gb)
	assert.InDeltaSlice(t, []float32{2}, gb.AsFloat32(), 1e-5)
}

func TestSequentialForward(t *testing.T) {
	b := newBackend()

	mlp := nn.NewSequential[float32, adBackend](
		nn.NewLinear[float32](b, 2, 4, nn.LinearConfig{Name: "l1"}),
		nn.NewReLU[float32, adBackend](),
		nn.NewLinear[float32](b, 4, 1, nn.LinearConfig{Name: "l2"}),
	)

	assert.Len(t, mlp.Parameters(), 4)

	x, err := tensor.FromSlice([]float32{0.5, -0.5}, tensor.Shape{1, 2}, b)
	require.NoError(t, err)

	out := mlp.Forward(x)
	assert.Equal(t, tensor.Shape{1, 1}, out.Shape())
}

func TestXavierUniformBounds(t *testing.T) {
	b := newBackend()

	w := nn.XavierUniform[float32](b, 100, 100)
	limit := float32(0.17321) // sqrt(6/200)

	for _, v := range w.Data() {
		assert.LessOrEqual(t, v, limit)
		assert.GreaterOrEqual(t, v, -limit)
	}
}

func TestTanhModule(t *testing.T) {
	b := newBackend()

	x, err := tensor.FromSlice([]float32{0}, tensor.Shape{1}, b)
	require.NoError(t, err)

	m := nn.NewTanh[float32, adBackend]()
	assert.InDelta(t, 0.0, float64(m.Forward(x).Data()[0]), 1e-6)
	assert.Nil(t, m.Parameters())
}
