package stack

// PlayState is the playback state of a Player.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
)

func (s PlayState) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Player is the play/pause state machine for a viewer's frame axis: a single
// forward pass from the current index to the last, one step per scheduling
// tick. The caller drives Step from its event loop, which is what lets a
// pause request or redraw be observed between frames.
type Player struct {
	viewer *Viewer
	state  PlayState
}

// NewPlayer creates a player bound to a viewer.
func NewPlayer(v *Viewer) *Player {
	return &Player{viewer: v}
}

// State returns the current playback state.
func (p *Player) State() PlayState {
	return p.state
}

// IsPlaying reports whether a forward pass is in progress.
func (p *Player) IsPlaying() bool {
	return p.state == Playing
}

// Play starts a forward pass. It is a no-op returning false unless the
// viewer has a frame axis with more than one frame.
func (p *Player) Play() bool {
	pos, ok := p.viewer.Axes().FrameAxis()
	if !ok || p.viewer.Axes()[pos].Size <= 1 {
		return false
	}
	p.state = Playing
	return true
}

// Pause requests a stop. It takes effect at the next step boundary; an
// in-flight decode is never interrupted.
func (p *Player) Pause() {
	p.state = Stopped
}

// Step advances the frame axis by one while playing, re-resolving the frame.
// Reaching the last index stops playback automatically. It reports whether
// the frame advanced.
func (p *Player) Step() (bool, error) {
	if p.state != Playing {
		return false, nil
	}
	pos, ok := p.viewer.Axes().FrameAxis()
	if !ok {
		// The axis set changed under us (new source); stop cleanly.
		p.state = Stopped
		return false, nil
	}

	last := p.viewer.Axes()[pos].Size - 1
	i := p.viewer.Indexes()[pos]
	if i >= last {
		p.state = Stopped
		return false, nil
	}
	if err := p.viewer.SetIndex(pos, i+1); err != nil {
		p.state = Stopped
		return false, err
	}
	if i+1 >= last {
		p.state = Stopped
	}
	return true, nil
}
