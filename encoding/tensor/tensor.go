// Package tensor is the dense float32 buffer handed to the classifier and its
// binary wire format.
package tensor

import (
	"fmt"
)

const (
	HeaderV1  = "doodle tensor, version=1        "
	HeaderLen = 32
)

// Tensor is a dense row-major float32 array.
type Tensor struct {
	Shape []int
	Data  []float32
}

// New allocates a zeroed tensor of the given shape.
func New(shape ...int) *Tensor {
	return &Tensor{
		Shape: append([]int(nil), shape...),
		Data:  make([]float32, elements(shape)),
	}
}

// Len is the number of elements the shape describes.
func (t *Tensor) Len() int {
	return elements(t.Shape)
}

// Validate checks that the data length matches the shape.
func (t *Tensor) Validate() error {
	for _, d := range t.Shape {
		if d <= 0 {
			return fmt.Errorf("invalid dimension %d in shape %v", d, t.Shape)
		}
	}
	if len(t.Data) != t.Len() {
		return fmt.Errorf("shape %v wants %d values, got %d", t.Shape, t.Len(), len(t.Data))
	}
	return nil
}

func elements(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
