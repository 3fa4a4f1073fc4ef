package stack

import (
	"stackview/internal/errors"
)

// Viewer owns the navigation state of one stack: the source, its axis set,
// the current index per axis and the materialized current frame. It is not
// safe for concurrent use; callers that share one across goroutines must
// serialize access themselves.
type Viewer struct {
	src      Source
	separate bool

	axes AxisSet
	idx  []int
	cur  *Frame

	onAxesChanged  func(AxisSet)
	onFrameChanged func(*Frame)
}

// NewViewer returns an empty viewer with no source set.
func NewViewer() *Viewer {
	return &Viewer{}
}

// OnAxesChanged registers a callback fired whenever the axis set is
// recomputed, so navigation controls can be rebuilt to match.
func (v *Viewer) OnAxesChanged(fn func(AxisSet)) {
	v.onAxesChanged = fn
}

// OnFrameChanged registers a callback fired whenever a new current frame is
// materialized.
func (v *Viewer) OnFrameChanged(fn func(*Frame)) {
	v.onFrameChanged = fn
}

// SetSource switches the viewer to a new stack, recomputing the axis set and
// resetting every index to zero. On failure the viewer state is unchanged:
// a half-opened source is never left behind.
func (v *Viewer) SetSource(src Source) error {
	if src == nil {
		v.src = nil
		v.axes = nil
		v.idx = nil
		v.cur = nil
		v.fireAxesChanged()
		v.fireFrameChanged()
		return nil
	}
	return v.rebuild(src, v.separate)
}

// Source returns the current stack source, or nil when nothing is loaded.
func (v *Viewer) Source() Source {
	return v.src
}

// SeparateChannels reports whether multi-channel frames are split into
// individually navigable grayscale planes.
func (v *Viewer) SeparateChannels() bool {
	return v.separate
}

// SetSeparateChannels toggles channel splitting. With a source loaded this
// recomputes the axis set and resets the selection, like a source switch.
func (v *Viewer) SetSeparateChannels(separate bool) error {
	if v.src == nil {
		v.separate = separate
		return nil
	}
	return v.rebuild(v.src, separate)
}

func (v *Viewer) rebuild(src Source, separate bool) error {
	axes, err := Describe(src, separate)
	if err != nil {
		return err
	}
	cur, err := Resolve(src, axes, axes.ZeroIndexes())
	if err != nil {
		return err
	}

	v.src = src
	v.separate = separate
	v.axes = axes
	v.idx = axes.ZeroIndexes()
	v.cur = cur
	v.fireAxesChanged()
	v.fireFrameChanged()
	return nil
}

// Axes returns the current axis set.
func (v *Viewer) Axes() AxisSet {
	return v.axes
}

// Indexes returns a copy of the current index vector.
func (v *Viewer) Indexes() []int {
	return append([]int(nil), v.idx...)
}

// CurrentFrame returns the materialized frame for the current selection, or
// nil when no source is loaded.
func (v *Viewer) CurrentFrame() *Frame {
	return v.cur
}

// SetIndexes replaces the whole index vector and re-resolves the frame.
// The previous selection stays intact when resolution fails.
func (v *Viewer) SetIndexes(idx []int) error {
	if v.src == nil {
		return errors.ErrNoImageLoaded
	}
	next := append([]int(nil), idx...)
	cur, err := Resolve(v.src, v.axes, next)
	if err != nil {
		return err
	}
	v.idx = next
	v.cur = cur
	v.fireFrameChanged()
	return nil
}

// SetIndex changes the index of a single axis and re-resolves the frame.
func (v *Viewer) SetIndex(axis, value int) error {
	if v.src == nil {
		return errors.ErrNoImageLoaded
	}
	if axis < 0 || axis >= len(v.idx) {
		return errors.NewIndexError(axis, value, 0)
	}
	next := append([]int(nil), v.idx...)
	next[axis] = value
	return v.SetIndexes(next)
}

// StepFrame moves the frame axis by delta, clamped at both ends. It reports
// whether the selection actually moved. Without a frame axis it is a no-op.
func (v *Viewer) StepFrame(delta int) (bool, error) {
	pos, ok := v.axes.FrameAxis()
	if !ok {
		return false, nil
	}
	next := v.idx[pos] + delta
	if next < 0 || next >= v.axes[pos].Size {
		return false, nil
	}
	if err := v.SetIndex(pos, next); err != nil {
		return false, err
	}
	return true, nil
}

// Refresh re-resolves the current selection, e.g. after the source changed
// on disk.
func (v *Viewer) Refresh() error {
	if v.src == nil {
		return errors.ErrNoImageLoaded
	}
	cur, err := Resolve(v.src, v.axes, v.idx)
	if err != nil {
		return err
	}
	v.cur = cur
	v.fireFrameChanged()
	return nil
}

func (v *Viewer) fireAxesChanged() {
	if v.onAxesChanged != nil {
		v.onAxesChanged(v.axes)
	}
}

func (v *Viewer) fireFrameChanged() {
	if v.onFrameChanged != nil {
		v.onFrameChanged(v.cur)
	}
}
