package stack

import "fmt"

// AxisKind identifies what a navigable axis traverses.
type AxisKind int

const (
	// FrameAxis steps through frames (pages, time points, z-slices, ...).
	FrameAxis AxisKind = iota
	// ChannelAxis steps through color bands of a single frame.
	ChannelAxis
)

func (k AxisKind) String() string {
	switch k {
	case FrameAxis:
		return "frame"
	case ChannelAxis:
		return "channel"
	default:
		return fmt.Sprintf("AxisKind(%d)", int(k))
	}
}

// Axis is one navigable dimension beyond the base 2D image plane.
// Dim records which source array dimension the axis addresses; it is -1 for
// file-backed sources where frames and channels are not array dimensions.
type Axis struct {
	Kind AxisKind
	Size int
	Dim  int
}

// AxisSet is the ordered list of navigable axes for a source. The channel
// axis, when present, always precedes the frame axis; the frame axis, when
// present, is always the final entry.
type AxisSet []Axis

// FrameAxis returns the position of the frame axis, which by construction is
// the final entry when present.
func (s AxisSet) FrameAxis() (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	last := len(s) - 1
	if s[last].Kind != FrameAxis {
		return 0, false
	}
	return last, true
}

// ChannelAxis returns the position of the channel axis, which by construction
// is the first entry when present.
func (s AxisSet) ChannelAxis() (int, bool) {
	if len(s) == 0 || s[0].Kind != ChannelAxis {
		return 0, false
	}
	return 0, true
}

// ZeroIndexes returns a fresh all-zero index vector sized to the set.
func (s AxisSet) ZeroIndexes() []int {
	return make([]int, len(s))
}
