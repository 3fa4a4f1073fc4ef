package stack

import (
	"stackview/internal/errors"
)

// Dense is an in-memory N-dimensional intensity array. Dimension 0 is rows,
// dimension 1 is columns; every further dimension becomes a navigable frame
// axis. Dense stacks are always displayed as flat intensity maps and are
// never channel-split.
type Dense struct {
	data    []float64
	shape   []int
	strides []int
}

// NewDense wraps row-major data with the given shape. At least two
// dimensions are required and len(data) must equal the product of the shape.
func NewDense(data []float64, shape ...int) (*Dense, error) {
	if len(shape) < 2 {
		return nil, errors.Newf("dense stack needs at least 2 dimensions, got %d", len(shape))
	}
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return nil, errors.Newf("dense stack dimension must be positive, got %d", s)
		}
		n *= s
	}
	if n != len(data) {
		return nil, errors.Newf("dense stack shape %v wants %d samples, got %d", shape, n, len(data))
	}

	strides := make([]int, len(shape))
	strides[len(shape)-1] = 1
	for d := len(shape) - 2; d >= 0; d-- {
		strides[d] = strides[d+1] * shape[d+1]
	}

	d := &Dense{
		data:    data,
		shape:   append([]int(nil), shape...),
		strides: strides,
	}
	return d, nil
}

// Shape returns a copy of the stack's dimensions.
func (d *Dense) Shape() []int {
	return append([]int(nil), d.shape...)
}

// Size returns frame width (columns) and height (rows).
func (d *Dense) Size() (int, int) {
	return d.shape[1], d.shape[0]
}

// axes maps each dimension beyond rows/columns to a frame axis, in dimension
// order, carrying the explicit dimension index for the resolver.
func (d *Dense) axes(bool) (AxisSet, error) {
	var set AxisSet
	for dim := 2; dim < len(d.shape); dim++ {
		set = append(set, Axis{Kind: FrameAxis, Size: d.shape[dim], Dim: dim})
	}
	return set, nil
}

// frame copies the 2D plane selected by fixing every extra dimension at its
// index. The returned buffer never aliases the stack's storage.
func (d *Dense) frame(axes AxisSet, idx []int) (*Frame, error) {
	base := 0
	for i, a := range axes {
		base += idx[i] * d.strides[a.Dim]
	}

	w, h := d.shape[1], d.shape[0]
	pix := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := base + y*d.strides[0]
		for x := 0; x < w; x++ {
			pix[y*w+x] = d.data[row+x*d.strides[1]]
		}
	}
	return &Frame{Width: w, Height: h, Channels: 1, Pix: pix}, nil
}
