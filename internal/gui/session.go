package gui

import (
	"sync"

	"stackview/internal/stack"
)

// snapshot is a consistent copy of the navigation state, taken under the
// session lock so callers can render it without holding the lock.
type snapshot struct {
	loaded  bool
	width   int
	height  int
	axes    stack.AxisSet
	indexes []int
	frame   *stack.Frame
	playing bool
}

// session serializes every viewer and player interaction behind one mutex.
// The fyne event goroutine, the playback ticker and the reload watcher all
// navigate through it, so the core itself can stay single-threaded. Change
// callbacks run while the lock is held and must not call back into the
// session; they receive a snapshot instead.
type session struct {
	mu     sync.Mutex
	viewer *stack.Viewer
	player *stack.Player
}

func newSession() *session {
	v := stack.NewViewer()
	return &session{viewer: v, player: stack.NewPlayer(v)}
}

// onAxesChanged registers a callback fired whenever the axis set is
// recomputed. Register before the session is shared.
func (s *session) onAxesChanged(fn func(stack.AxisSet)) {
	s.viewer.OnAxesChanged(fn)
}

// onFrameChanged registers a callback fired with a full snapshot whenever a
// new frame is materialized.
func (s *session) onFrameChanged(fn func(snapshot)) {
	s.viewer.OnFrameChanged(func(*stack.Frame) {
		fn(s.snapshotLocked())
	})
}

func (s *session) snapshotLocked() snapshot {
	st := snapshot{
		axes:    s.viewer.Axes(),
		indexes: s.viewer.Indexes(),
		frame:   s.viewer.CurrentFrame(),
		playing: s.player.IsPlaying(),
	}
	if src := s.viewer.Source(); src != nil {
		st.loaded = true
		st.width, st.height = src.Size()
	}
	return st
}

func (s *session) state() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// setSource switches the stack, stopping any playback first.
func (s *session) setSource(src stack.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Pause()
	return s.viewer.SetSource(src)
}

func (s *session) setSeparateChannels(separate bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.SetSeparateChannels(separate)
}

func (s *session) setIndex(axis, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.SetIndex(axis, value)
}

func (s *session) stepFrame(delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.StepFrame(delta)
}

func (s *session) refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.Refresh()
}

// play starts a forward pass. It reports false when playback is already
// running or there is nothing to play, so only one ticker is ever spawned.
func (s *session) play() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player.IsPlaying() {
		return false
	}
	return s.player.Play()
}

func (s *session) pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Pause()
}

func (s *session) step() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Step()
}
