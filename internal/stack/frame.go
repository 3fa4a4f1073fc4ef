package stack

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Frame is the materialized 2D buffer for the current index selection. It is
// owned by the viewer and replaced, never mutated, on every index change.
// Either Pix holds band-interleaved float64 samples (Channels per pixel), or
// Img holds a display-ready composite decoded by the source.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64
	Img      image.Image
}

// At reports the sample values at pixel (x, y), one per channel. It returns
// nil when the position is outside the frame.
func (f *Frame) At(x, y int) []float64 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return nil
	}
	if f.Pix != nil {
		i := (y*f.Width + x) * f.Channels
		return append([]float64(nil), f.Pix[i:i+f.Channels]...)
	}
	if f.Img != nil {
		// NRGBAModel keeps straight channel values for translucent pixels.
		c := color.NRGBAModel.Convert(f.Img.At(x, y)).(color.NRGBA)
		return []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
	}
	return nil
}

// Stats returns the minimum, maximum and mean sample value of the frame's
// raw data. Composite frames report zeros.
func (f *Frame) Stats() (min, max, mean float64) {
	if len(f.Pix) == 0 {
		return 0, 0, 0
	}
	return floats.Min(f.Pix), floats.Max(f.Pix), stat.Mean(f.Pix, nil)
}

// Image converts the frame to a renderable image. Composite frames pass
// through unchanged; single-channel planes are contrast-stretched over their
// value range into 16-bit grayscale; interleaved 3- and 4-band planes are
// treated as 8-bit RGB(A).
func (f *Frame) Image() image.Image {
	if f.Img != nil {
		return f.Img
	}
	if len(f.Pix) == 0 {
		return nil
	}

	switch f.Channels {
	case 3, 4:
		img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				i := (y*f.Width + x) * f.Channels
				a := 255.0
				if f.Channels == 4 {
					a = f.Pix[i+3]
				}
				img.SetNRGBA(x, y, color.NRGBA{
					R: clamp8(f.Pix[i]),
					G: clamp8(f.Pix[i+1]),
					B: clamp8(f.Pix[i+2]),
					A: clamp8(a),
				})
			}
		}
		return img
	default:
		// Grayscale plane, stretched to the full 16-bit range.
		lo := floats.Min(f.Pix)
		hi := floats.Max(f.Pix)
		scale := 0.0
		if hi > lo {
			scale = 65535.0 / (hi - lo)
		}
		img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				v := (f.Pix[(y*f.Width+x)*f.Channels] - lo) * scale
				img.SetGray16(x, y, color.Gray16{Y: uint16(v)})
			}
		}
		return img
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
