package rl

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

func fromSlice(t *testing.T, b adBackend, data []float32, shape tensor.Shape) *tensor.Tensor[float32, adBackend] {
	t.Helper()
	out, err := tensor.FromSlice(data, shape, b)
	require.NoError(t, err)
	return out
}

// negSquaredNorm builds q = -Σ_a a² on the recording backend, so
// dqda = -2a analytically.
func negSquaredNorm(a *tensor.Tensor[float32, adBackend]) *tensor.Tensor[float32, adBackend] {
	return a.Mul(a).SumDim(-1, false).MulScalar(-1)
}

func TestDPGAnalytic(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
	qMax := negSquaredNorm(aMax)

	out, err := DPG(qMax, aMax, DPGConfig{})
	require.NoError(t, err)

	// dqda = -2a = [-2, -2]; loss = 0.5 * (4 + 4) = 4.
	assert.InDeltaSlice(t, []float32{-2, -2}, out.Extra.DQDA.Data(), 1e-6)
	require.Equal(t, tensor.Shape{1}, out.Loss.Shape())
	assert.InDelta(t, 4.0, float64(out.Loss.Data()[0]), 1e-6)

	// d loss / d aMax = -dqda: the loss moves actions along dqda.
	grads, err := autodiff.Backward(out.Loss)
	require.NoError(t, err)
	gradA := autodiff.Grad(grads, aMax)
	require.NotNil(t, gradA)
	assert.InDeltaSlice(t, []float32{2, 2}, gradA.AsFloat32(), 1e-6)

	// The diagnostic record must survive the backward pass unchanged.
	assert.InDeltaSlice(t, []float32{-2, -2}, out.Extra.DQDA.Data(), 1e-6)
}

// TestDPGExtraNotAliased verifies that building the surrogate target
// (dqda + aMax) does not write through to the DQDA diagnostic: the record
// keeps the clipped action-value gradient, not the target.
func TestDPGExtraNotAliased(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
	qMax := negSquaredNorm(aMax)

	out, err := DPG(qMax, aMax, DPGConfig{})
	require.NoError(t, err)

	// dqda = -2a = [-2, -2]. If the target add aliased DQDA's buffer the
	// record would read dqda + aMax = [-1, -1] instead.
	assert.InDeltaSlice(t, []float32{-2, -2}, out.Extra.DQDA.Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{1, 1}, out.Extra.AMax.Data(), 1e-6)

	clip := 1.0
	clipped, err := DPG(negSquaredNorm(aMax), aMax, DPGConfig{DQDAClipping: &clip})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-1, -1}, clipped.Extra.DQDA.Data(), 1e-6)
}

func TestDPGBatched(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1, 3, -1}, tensor.Shape{2, 2})
	qMax := negSquaredNorm(aMax)

	out, err := DPG(qMax, aMax, DPGConfig{})
	require.NoError(t, err)

	// Per-row: loss = 0.5 * ||2a||².
	assert.InDeltaSlice(t, []float32{-2, -2, -6, 2}, out.Extra.DQDA.Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{4, 20}, out.Loss.Data(), 1e-5)
}

func TestDPGComponentwiseClipping(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
	qMax := negSquaredNorm(aMax)

	clip := 1.0
	out, err := DPG(qMax, aMax, DPGConfig{DQDAClipping: &clip})
	require.NoError(t, err)

	// Raw dqda is [-2, -2]; clipped to [-1, -1]; loss = 0.5 * (1 + 1) = 1.
	assert.InDeltaSlice(t, []float32{-1, -1}, out.Extra.DQDA.Data(), 1e-6)
	assert.InDelta(t, 1.0, float64(out.Loss.Data()[0]), 1e-6)

	grads, err := autodiff.Backward(out.Loss)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1, 1}, autodiff.Grad(grads, aMax).AsFloat32(), 1e-6)
}

func TestDPGNormClipping(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
	qMax := negSquaredNorm(aMax)

	clip := 1.0
	out, err := DPG(qMax, aMax, DPGConfig{DQDAClipping: &clip, ClipByNorm: true})
	require.NoError(t, err)

	// ||[-2,-2]|| = 2√2 > 1, so the row is rescaled to unit norm with the
	// direction preserved; loss = 0.5 * 1² = 0.5.
	s := float32(1.0 / 1.4142135)
	assert.InDeltaSlice(t, []float32{-s, -s}, out.Extra.DQDA.Data(), 1e-5)
	assert.InDelta(t, 0.5, float64(out.Loss.Data()[0]), 1e-5)
}

func TestDPGNormClippingWithinBound(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{0.1, 0.1}, tensor.Shape{1, 2})
	qMax := negSquaredNorm(aMax)

	clip := 10.0
	out, err := DPG(qMax, aMax, DPGConfig{DQDAClipping: &clip, ClipByNorm: true})
	require.NoError(t, err)

	// ||[-0.2,-0.2]|| is well under the bound: dqda passes through.
	assert.InDeltaSlice(t, []float32{-0.2, -0.2}, out.Extra.DQDA.Data(), 1e-6)
}

func TestDPGInvalidClipMagnitude(t *testing.T) {
	for _, mode := range []struct {
		name   string
		byNorm bool
	}{
		{"componentwise", false},
		{"norm", true},
	} {
		t.Run(mode.name, func(t *testing.T) {
			for _, magnitude := range []float64{0, -1} {
				b := newBackend()
				aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
				qMax := negSquaredNorm(aMax)

				m := magnitude
				_, err := DPG(qMax, aMax, DPGConfig{DQDAClipping: &m, ClipByNorm: mode.byNorm})
				assert.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestDPGConstantValueEstimate(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
	qMax := fromSlice(t, b, []float32{3}, tensor.Shape{1})

	_, err := DPG(qMax, aMax, DPGConfig{})
	assert.ErrorIs(t, err, ErrInvalidGraph)
}

func TestDPGDetachedValueEstimate(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
	qMax := negSquaredNorm(aMax).Detach()

	_, err := DPG(qMax, aMax, DPGConfig{})
	assert.ErrorIs(t, err, ErrInvalidGraph)
}

func TestDPGShapeValidation(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})
	qMax := negSquaredNorm(aMax)

	t.Run("value estimate rank", func(t *testing.T) {
		bad := fromSlice(t, b, []float32{1}, tensor.Shape{1, 1})
		_, err := DPG(bad, aMax, DPGConfig{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("action rank", func(t *testing.T) {
		bad := fromSlice(t, b, []float32{1, 1}, tensor.Shape{2})
		_, err := DPG(qMax, bad, DPGConfig{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("batch mismatch", func(t *testing.T) {
		bad := fromSlice(t, b, []float32{1, 1, 1, 1}, tensor.Shape{2, 2})
		_, err := DPG(qMax, bad, DPGConfig{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestDPGMultiPathGradient(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{1, 1}, tensor.Shape{1, 2})

	// qMax uses the value estimate twice, so dqda doubles.
	q := negSquaredNorm(aMax)
	qMax := q.Add(q)

	out, err := DPG(qMax, aMax, DPGConfig{})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float32{-4, -4}, out.Extra.DQDA.Data(), 1e-6)
	assert.InDelta(t, 16.0, float64(out.Loss.Data()[0]), 1e-5)
}

// TestDPGActorOnlyFlow wires a small actor and critic and verifies that
// backpropagating the loss reaches the actor's parameters but not the
// critic's.
func TestDPGActorOnlyFlow(t *testing.T) {
	b := newBackend()

	actor := nn.NewLinear[float32](b, 3, 2, nn.LinearConfig{Name: "actor"})
	critic := nn.NewLinear[float32](b, 2, 1, nn.LinearConfig{Name: "critic"})

	state := fromSlice(t, b, []float32{0.5, -1, 2, 1, 0, -0.5}, tensor.Shape{2, 3})
	aMax := actor.Forward(state)
	qMax := critic.Forward(aMax).SumDim(-1, false) // [2,1] -> [2]

	out, err := DPG(qMax, aMax, DPGConfig{})
	require.NoError(t, err)

	grads, err := autodiff.Backward(out.Loss)
	require.NoError(t, err)

	for _, p := range actor.Parameters() {
		assert.NotNil(t, grads[p.Raw()], "actor parameter %s should receive a gradient", p.Name())
	}
	for _, p := range critic.Parameters() {
		assert.Nil(t, grads[p.Raw()], "critic parameter %s should not receive a gradient", p.Name())
	}
}

func TestDPGLossEqualsHalfSquaredDQDANorm(t *testing.T) {
	b := newBackend()

	aMax := fromSlice(t, b, []float32{0.3, -0.7, 1.2}, tensor.Shape{1, 3})
	qMax := negSquaredNorm(aMax)

	out, err := DPG(qMax, aMax, DPGConfig{})
	require.NoError(t, err)

	var want float64
	for _, g := range out.Extra.DQDA.Data() {
		want += float64(g) * float64(g)
	}
	want *= 0.5
	assert.InDelta(t, want, float64(out.Loss.Data()[0]), 1e-5)
}
