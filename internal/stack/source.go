package stack

import (
	"image"

	"stackview/internal/errors"
)

// Source is an image stack. Exactly two variants exist: Dense (in-memory
// array) and File (lazy file handle); the interface is sealed so the
// descriptor and resolver can rely on that.
type Source interface {
	// Size returns the width and height of a single frame.
	Size() (w, h int)

	// axes reports the navigable axes from metadata alone; it must not
	// decode pixel data.
	axes(separateChannels bool) (AxisSet, error)

	// frame materializes the frame addressed by idx. Indexes are already
	// bounds-checked by Resolve.
	frame(axes AxisSet, idx []int) (*Frame, error)
}

// FrameReader is the decoding collaborator behind a File source: an ordered,
// seek-addressable sequence of frames whose metadata (band names, frame
// count, dimensions) is known without decoding pixels.
type FrameReader interface {
	// Bands returns the channel names of a frame, e.g. ["R","G","B"].
	Bands() []string
	// Frames returns the number of frames in the sequence.
	Frames() int
	// Size returns frame width and height.
	Size() (w, h int)
	// Seek positions the reader at frame i. It does not decode.
	Seek(i int) error
	// Raw decodes the current frame as band-interleaved float64 samples,
	// len = w*h*len(Bands()).
	Raw() ([]float64, error)
	// Display decodes the current frame to a display-ready image. May fail
	// where Raw would succeed; callers fall back to Raw.
	Display() (image.Image, error)
	// PixelAt reports the sample values of the current frame at (x, y).
	PixelAt(x, y int) ([]float64, error)
}

// Describe computes the navigable AxisSet of a source from metadata only.
// A source with no axes beyond the 2D plane yields an empty set.
func Describe(src Source, separateChannels bool) (AxisSet, error) {
	if src == nil {
		return nil, errors.ErrUnsupportedSource
	}
	return src.axes(separateChannels)
}

// Resolve materializes the frame addressed by idx, one index per axis.
// Every index is validated against its axis size before any seek or decode
// happens, so a failed call never leaves the source half-positioned.
func Resolve(src Source, axes AxisSet, idx []int) (*Frame, error) {
	if src == nil {
		return nil, errors.ErrUnsupportedSource
	}
	if len(idx) != len(axes) {
		return nil, errors.NewAxisError(len(idx), len(axes))
	}
	for i, a := range axes {
		if idx[i] < 0 || idx[i] >= a.Size {
			return nil, errors.NewIndexError(i, idx[i], a.Size)
		}
	}
	return src.frame(axes, idx)
}
