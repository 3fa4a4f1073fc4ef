package stack_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/stack"
)

func TestFrameAt(t *testing.T) {
	f := &stack.Frame{
		Width:    2,
		Height:   2,
		Channels: 3,
		Pix:      []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	}

	assert.Equal(t, []float64{1, 2, 3}, f.At(0, 0))
	assert.Equal(t, []float64{10, 11, 12}, f.At(1, 1))
	assert.Nil(t, f.At(2, 0))
	assert.Nil(t, f.At(0, -1))
}

func TestFrameStats(t *testing.T) {
	f := &stack.Frame{Width: 2, Height: 2, Channels: 1, Pix: []float64{0, 2, 4, 6}}
	min, max, mean := f.Stats()
	assert.Equal(t, float64(0), min)
	assert.Equal(t, float64(6), max)
	assert.Equal(t, float64(3), mean)
}

func TestFrameImageGrayscaleStretch(t *testing.T) {
	f := &stack.Frame{Width: 2, Height: 1, Channels: 1, Pix: []float64{10, 20}}
	img := f.Image()
	gray, ok := img.(*image.Gray16)
	require.True(t, ok)

	assert.Equal(t, uint16(0), gray.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(65535), gray.Gray16At(1, 0).Y)
}

func TestFrameImageFlatPlane(t *testing.T) {
	// A constant plane must not divide by zero range.
	f := &stack.Frame{Width: 2, Height: 1, Channels: 1, Pix: []float64{7, 7}}
	img := f.Image()
	gray, ok := img.(*image.Gray16)
	require.True(t, ok)
	assert.Equal(t, uint16(0), gray.Gray16At(0, 0).Y)
}

func TestFrameImageRGB(t *testing.T) {
	f := &stack.Frame{
		Width:    1,
		Height:   1,
		Channels: 3,
		Pix:      []float64{255, 0, 300},
	}
	img := f.Image()
	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok)

	c := nrgba.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(255), c.B, "values above 255 clamp")
	assert.Equal(t, uint8(255), c.A)
}

func TestFrameAtTranslucentComposite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 20, G: 40, B: 60, A: 200})
	f := &stack.Frame{Width: 1, Height: 1, Channels: 4, Img: img}

	assert.Equal(t, []float64{20, 40, 60, 200}, f.At(0, 0),
		"composite readout must not premultiply by alpha")
}

func TestFrameImageCompositePassthrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	f := &stack.Frame{Width: 3, Height: 3, Channels: 3, Img: src}
	assert.Equal(t, image.Image(src), f.Image())
}

func TestNewDenseValidation(t *testing.T) {
	_, err := stack.NewDense(make([]float64, 10), 10)
	assert.Error(t, err, "fewer than two dimensions is rejected")

	_, err = stack.NewDense(make([]float64, 10), 2, 6)
	assert.Error(t, err, "shape/data mismatch is rejected")

	_, err = stack.NewDense(nil, 2, 0)
	assert.Error(t, err, "zero-size dimension is rejected")

	_, err = stack.NewDense(make([]float64, 12), 2, 6)
	assert.NoError(t, err)
}
