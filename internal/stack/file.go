package stack

import (
	"stackview/internal/errors"
	"stackview/internal/log"
)

// File is a lazy file-backed stack: frame pixel data lives behind a
// FrameReader and only the current frame is ever materialized.
type File struct {
	r FrameReader
}

// NewFile wraps a frame reader as a stack source.
func NewFile(r FrameReader) (*File, error) {
	if r == nil {
		return nil, errors.ErrUnsupportedSource
	}
	return &File{r: r}, nil
}

// Reader exposes the underlying frame reader, e.g. for cursor pixel queries.
func (f *File) Reader() FrameReader {
	return f.r
}

// Size returns frame width and height.
func (f *File) Size() (int, int) {
	return f.r.Size()
}

// axes derives the navigation axes from reader metadata: a channel axis when
// the frame has more than one band and channel splitting is on, then a frame
// axis when the sequence has more than one frame. Degenerate axes (size 1)
// are omitted.
func (f *File) axes(separateChannels bool) (AxisSet, error) {
	var set AxisSet
	if c := len(f.r.Bands()); c > 1 && separateChannels {
		set = append(set, Axis{Kind: ChannelAxis, Size: c, Dim: -1})
	}
	if n := f.r.Frames(); n > 1 {
		set = append(set, Axis{Kind: FrameAxis, Size: n, Dim: -1})
	}
	return set, nil
}

// frame seeks to the requested frame first (seeking decides which frame's
// channels are read), then either extracts a single channel or decodes the
// composite frame. A display-format decode failure falls back to the raw
// sample path and is never surfaced.
func (f *File) frame(axes AxisSet, idx []int) (*Frame, error) {
	if pos, ok := axes.FrameAxis(); ok {
		if err := f.r.Seek(idx[pos]); err != nil {
			return nil, errors.NewSeekError(idx[pos], err)
		}
	}

	w, h := f.r.Size()
	bands := len(f.r.Bands())

	if pos, ok := axes.ChannelAxis(); ok {
		raw, err := f.r.Raw()
		if err != nil {
			return nil, errors.NewDecodeError("decoding frame", currentFrameIndex(axes, idx), err)
		}
		ch := idx[pos]
		pix := make([]float64, w*h)
		for i := range pix {
			pix[i] = raw[i*bands+ch]
		}
		return &Frame{Width: w, Height: h, Channels: 1, Pix: pix}, nil
	}

	img, err := f.r.Display()
	if err == nil {
		return &Frame{Width: w, Height: h, Channels: bands, Img: img}, nil
	}
	log.Debugf("display decode failed, falling back to raw samples: %v", err)

	raw, err := f.r.Raw()
	if err != nil {
		return nil, errors.NewDecodeError("decoding frame", currentFrameIndex(axes, idx), err)
	}
	return &Frame{Width: w, Height: h, Channels: bands, Pix: raw}, nil
}

func currentFrameIndex(axes AxisSet, idx []int) int {
	if pos, ok := axes.FrameAxis(); ok {
		return idx[pos]
	}
	return 0
}
