package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, x.Shape())
	assert.Equal(t, tensor.Float32, x.DType())
	assert.InDeltaSlice(t, []float32{1, 2, 3, 4}, x.Data(), 1e-6)

	_, err = tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, b)
	assert.Error(t, err)
}

func TestCreation(t *testing.T) {
	b := cpu.New()

	z := tensor.Zeros[float32](tensor.Shape{2, 3}, b)
	assert.Equal(t, 6, z.NumElements())
	for _, v := range z.Data() {
		assert.Zero(t, v)
	}

	o := tensor.Ones[float64](tensor.Shape{3}, b)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, o.Data(), 1e-12)

	f := tensor.Full[float32](tensor.Shape{2}, 7, b)
	assert.InDeltaSlice(t, []float32{7, 7}, f.Data(), 1e-6)
}

func TestAtSet(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	assert.Equal(t, float32(6), x.At(1, 2))
	x.Set(42, 0, 1)
	assert.Equal(t, float32(42), x.At(0, 1))

	assert.Panics(t, func() { x.At(2, 0) })
}

func TestDetachSharesDataWithNewIdentity(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, b)
	require.NoError(t, err)

	d := x.Detach()
	assert.NotSame(t, x.Raw(), d.Raw())
	assert.InDeltaSlice(t, x.Data(), d.Data(), 1e-6)

	// Shared buffer: neither side is unique until one is released.
	assert.False(t, x.Raw().IsUnique())
}

func TestBroadcastShapes(t *testing.T) {
	cases := []struct {
		a, b, want tensor.Shape
		ok         bool
	}{
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{2, 1}, tensor.Shape{1, 3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{}, tensor.Shape{4}, tensor.Shape{4}, true},
		{tensor.Shape{2}, tensor.Shape{3}, nil, false},
	}

	for _, c := range cases {
		got, _, err := tensor.BroadcastShapes(c.a, c.b)
		if !c.ok {
			assert.Error(t, err, "shapes %v and %v", c.a, c.b)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestNormalizeDim(t *testing.T) {
	s := tensor.Shape{2, 3}
	assert.Equal(t, 1, s.NormalizeDim(-1))
	assert.Equal(t, 0, s.NormalizeDim(0))
	assert.Panics(t, func() { s.NormalizeDim(2) })
	assert.Panics(t, func() { s.NormalizeDim(-3) })
}

func TestShapeHelpers(t *testing.T) {
	s := tensor.Shape{2, 3, 4}
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.ComputeStrides())

	clone := s.Clone()
	clone[0] = 99
	assert.Equal(t, 2, s[0])

	assert.Error(t, tensor.Shape{2, -1}.Validate())
}
