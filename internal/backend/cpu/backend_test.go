package cpu_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/internal/tensor"
)

func fromSlice(t *testing.T, b *cpu.CPUBackend, data []float32, shape tensor.Shape) *tensor.Tensor[float32, *cpu.CPUBackend] {
	t.Helper()
	out, err := tensor.FromSlice(data, shape, b)
	require.NoError(t, err)
	return out
}

func TestBinaryOps(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y := fromSlice(t, b, []float32{4, 3, 2, 1}, tensor.Shape{2, 2})

	assert.InDeltaSlice(t, []float32{5, 5, 5, 5}, x.Add(y).Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{-3, -1, 1, 3}, x.Sub(y).Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{4, 6, 6, 4}, x.Mul(y).Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{0.25, 2.0 / 3, 1.5, 4}, x.Div(y).Data(), 1e-6)
}

// TestBinaryOpsLeaveOperandsUntouched reuses the same receivers across a
// sequence of operations: binary ops must allocate fresh results and never
// write into an operand's buffer, unique or not.
func TestBinaryOpsLeaveOperandsUntouched(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y := fromSlice(t, b, []float32{4, 3, 2, 1}, tensor.Shape{2, 2})

	sum := x.Add(y)
	assert.InDeltaSlice(t, []float32{1, 2, 3, 4}, x.Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{4, 3, 2, 1}, y.Data(), 1e-6)

	// A second op on the original receiver sees the original values.
	assert.InDeltaSlice(t, []float32{-3, -1, 1, 3}, x.Sub(y).Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{5, 5, 5, 5}, sum.Data(), 1e-6)
}

func TestBroadcasting(t *testing.T) {
	b := cpu.New()

	t.Run("row vector", func(t *testing.T) {
		x := fromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
		row := fromSlice(t, b, []float32{10, 20, 30}, tensor.Shape{1, 3})

		out := x.Add(row)
		assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
		assert.InDeltaSlice(t, []float32{11, 22, 33, 14, 25, 36}, out.Data(), 1e-6)
	})

	t.Run("column vector", func(t *testing.T) {
		x := fromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
		col := fromSlice(t, b, []float32{100, 200}, tensor.Shape{2, 1})

		out := x.Add(col)
		assert.InDeltaSlice(t, []float32{101, 102, 103, 204, 205, 206}, out.Data(), 1e-6)
	})

	t.Run("scalar shape", func(t *testing.T) {
		x := fromSlice(t, b, []float32{1, 2}, tensor.Shape{2})
		s := fromSlice(t, b, []float32{5}, tensor.Shape{})

		out := x.Mul(s)
		assert.InDeltaSlice(t, []float32{5, 10}, out.Data(), 1e-6)
	})

	t.Run("incompatible shapes panic", func(t *testing.T) {
		x := fromSlice(t, b, []float32{1, 2, 3}, tensor.Shape{3})
		y := fromSlice(t, b, []float32{1, 2}, tensor.Shape{2})
		assert.Panics(t, func() { x.Add(y) })
	})
}

func TestMatMul(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	y := fromSlice(t, b, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := x.MatMul(y)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{58, 64, 139, 154}, out.Data(), 1e-5)

	t.Run("inner dim mismatch panics", func(t *testing.T) {
		bad := fromSlice(t, b, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
		assert.Panics(t, func() { x.MatMul(bad) })
	})
}

func TestTranspose(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := x.T()

	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{1, 4, 2, 5, 3, 6}, out.Data(), 1e-6)
}

func TestUnaryOps(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{-1, 0, 4}, tensor.Shape{3})

	assert.InDeltaSlice(t, []float32{0, 0, 4}, x.ReLU().Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{
		float32(math.Tanh(-1)), 0, float32(math.Tanh(4)),
	}, x.Tanh().Data(), 1e-6)

	sq := fromSlice(t, b, []float32{4, 9}, tensor.Shape{2})
	assert.InDeltaSlice(t, []float32{2, 3}, sq.Sqrt().Data(), 1e-6)
}

func TestScalarOps(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2}, tensor.Shape{2})
	assert.InDeltaSlice(t, []float32{3, 4}, x.AddScalar(2).Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{2.5, 5}, x.MulScalar(2.5).Data(), 1e-6)
}

func TestClamp(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{-3, -0.5, 0.5, 3}, tensor.Shape{4})
	out := x.Clamp(-1, 1)
	assert.InDeltaSlice(t, []float32{-1, -0.5, 0.5, 1}, out.Data(), 1e-6)

	assert.Panics(t, func() { x.Clamp(1, -1) })
}

func TestClipByNorm(t *testing.T) {
	b := cpu.New()

	t.Run("rescales rows over the bound", func(t *testing.T) {
		x := fromSlice(t, b, []float32{3, 4, 0.3, 0.4}, tensor.Shape{2, 2})
		out := x.ClipByNorm(1)

		// First row has norm 5: scaled to [0.6, 0.8]. Second row has norm
		// 0.5: untouched.
		assert.InDeltaSlice(t, []float32{0.6, 0.8, 0.3, 0.4}, out.Data(), 1e-6)
	})

	t.Run("zero rows pass through", func(t *testing.T) {
		x := fromSlice(t, b, []float32{0, 0}, tensor.Shape{1, 2})
		out := x.ClipByNorm(1)
		assert.InDeltaSlice(t, []float32{0, 0}, out.Data(), 1e-6)
	})

	t.Run("preserves direction", func(t *testing.T) {
		x := fromSlice(t, b, []float32{-6, 8}, tensor.Shape{1, 2})
		out := x.ClipByNorm(5)
		assert.InDeltaSlice(t, []float32{-3, 4}, out.Data(), 1e-6)
	})
}

func TestReductions(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	t.Run("sum to scalar", func(t *testing.T) {
		out := x.Sum()
		assert.Equal(t, tensor.Shape{}, out.Shape())
		assert.InDelta(t, 21.0, float64(out.Item()), 1e-6)
	})

	t.Run("sum last dim", func(t *testing.T) {
		out := x.SumDim(-1, false)
		assert.Equal(t, tensor.Shape{2}, out.Shape())
		assert.InDeltaSlice(t, []float32{6, 15}, out.Data(), 1e-6)
	})

	t.Run("sum first dim keepdim", func(t *testing.T) {
		out := x.SumDim(0, true)
		assert.Equal(t, tensor.Shape{1, 3}, out.Shape())
		assert.InDeltaSlice(t, []float32{5, 7, 9}, out.Data(), 1e-6)
	})

	t.Run("mean last dim", func(t *testing.T) {
		out := x.MeanDim(-1, false)
		assert.InDeltaSlice(t, []float32{2, 5}, out.Data(), 1e-6)
	})
}

func TestReshape(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := x.Reshape(3, 2)

	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{1, 2, 3, 4, 5, 6}, out.Data(), 1e-6)

	assert.Panics(t, func() { x.Reshape(4, 2) })
}

func TestClonesUnaffectedByOps(t *testing.T) {
	b := cpu.New()

	x := fromSlice(t, b, []float32{1, 2}, tensor.Shape{2})
	clone := x.Clone()

	out := x.Add(x)
	assert.InDeltaSlice(t, []float32{2, 4}, out.Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{1, 2}, clone.Data(), 1e-6)
}
