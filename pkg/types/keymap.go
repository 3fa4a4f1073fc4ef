package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the terminal stack navigator.
// It lives in pkg/types to be shared between the model and its tests.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Frame axis
	NextFrame  key.Binding
	PrevFrame  key.Binding
	FirstFrame key.Binding
	LastFrame  key.Binding

	// Leading axis (channel for split file stacks)
	NextChannel key.Binding
	PrevChannel key.Binding

	// Playback & display
	PlayPause     key.Binding
	SplitChannels key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextFrame: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next frame"),
		),
		PrevFrame: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev frame"),
		),
		FirstFrame: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first frame"),
		),
		LastFrame: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last frame"),
		),
		NextChannel: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next channel"),
		),
		PrevChannel: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev channel"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		SplitChannels: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split channels"),
		),
	}
}
