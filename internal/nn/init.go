package nn

import (
	"math"

	"github.com/drift-ml/drift/internal/tensor"
)

// XavierUniform returns a [fanIn, fanOut] tensor initialized from
// U(-limit, limit) with limit = sqrt(6 / (fanIn + fanOut)). Keeps
// activation variance roughly constant across layers with tanh-like
// nonlinearities.
func XavierUniform[T tensor.DType, B tensor.Backend](backend B, fanIn, fanOut int) *tensor.Tensor[T, B] {
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Rand[T, B](tensor.Shape{fanIn, fanOut}, backend)
	data := t.Data()
	for i := range data {
		// Map [0,1) to (-limit, limit).
		data[i] = T((float64(data[i])*2 - 1) * limit)
	}
	return t
}

// HeUniform returns a [fanIn, fanOut] tensor initialized from
// U(-limit, limit) with limit = sqrt(6 / fanIn), suited to ReLU layers.
func HeUniform[T tensor.DType, B tensor.Backend](backend B, fanIn, fanOut int) *tensor.Tensor[T, B] {
	limit := math.Sqrt(6.0 / float64(fanIn))

	t := tensor.Rand[T, B](tensor.Shape{fanIn, fanOut}, backend)
	data := t.Data()
	for i := range data {
		data[i] = T((float64(data[i])*2 - 1) * limit)
	}
	return t
}
