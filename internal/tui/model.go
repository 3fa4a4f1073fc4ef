// Package tui implements the terminal stack navigator: the same viewer core
// as the GUI, driven by keyboard navigation with a coarse intensity preview
// of the current frame.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stackview/internal/config"
	"stackview/internal/imgio"
	"stackview/internal/stack"
	"stackview/pkg/types"
)

// tickMsg schedules the next playback step.
type tickMsg time.Time

// Model is the bubbletea model for the stack navigator.
type Model struct {
	cfg    *config.Config
	keys   types.KeyMap
	viewer *stack.Viewer
	player *stack.Player
	path   string

	width    int
	height   int
	showHelp bool
	status   string
}

// New opens the stack at path and builds the navigator model.
func New(cfg *config.Config, path string) (*Model, error) {
	viewer := stack.NewViewer()
	if err := viewer.SetSeparateChannels(cfg.Display.SeparateChannels); err != nil {
		return nil, err
	}

	reader, err := imgio.Open(path, cfg.Sequence.Pattern)
	if err != nil {
		return nil, err
	}
	src, err := stack.NewFile(reader)
	if err != nil {
		return nil, err
	}
	if err := viewer.SetSource(src); err != nil {
		return nil, err
	}

	return &Model{
		cfg:    cfg,
		keys:   types.DefaultKeyMap(),
		viewer: viewer,
		player: stack.NewPlayer(viewer),
		path:   path,
		width:  80,
		height: 24,
	}, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	interval := time.Duration(float64(time.Second) / m.cfg.Playback.FPS)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// handleTick advances playback by one frame and schedules the next step
// while the player stays in the playing state.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	advanced, err := m.player.Step()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	if advanced && m.player.IsPlaying() {
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.NextFrame):
		m.player.Pause()
		m.stepFrame(1)
	case key.Matches(msg, m.keys.PrevFrame):
		m.player.Pause()
		m.stepFrame(-1)
	case key.Matches(msg, m.keys.FirstFrame):
		m.gotoFrame(0)
	case key.Matches(msg, m.keys.LastFrame):
		if pos, ok := m.viewer.Axes().FrameAxis(); ok {
			m.gotoFrame(m.viewer.Axes()[pos].Size - 1)
		}
	case key.Matches(msg, m.keys.NextChannel):
		m.stepChannel(1)
	case key.Matches(msg, m.keys.PrevChannel):
		m.stepChannel(-1)
	case key.Matches(msg, m.keys.PlayPause):
		if m.player.IsPlaying() {
			m.player.Pause()
			return m, nil
		}
		if m.player.Play() {
			return m, m.tick()
		}
		m.status = "nothing to play"
	case key.Matches(msg, m.keys.SplitChannels):
		if err := m.viewer.SetSeparateChannels(!m.viewer.SeparateChannels()); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m *Model) stepFrame(delta int) {
	if _, err := m.viewer.StepFrame(delta); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) gotoFrame(i int) {
	m.player.Pause()
	pos, ok := m.viewer.Axes().FrameAxis()
	if !ok {
		return
	}
	if err := m.viewer.SetIndex(pos, i); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) stepChannel(delta int) {
	pos, ok := m.viewer.Axes().ChannelAxis()
	if !ok {
		return
	}
	next := m.viewer.Indexes()[pos] + delta
	if next < 0 || next >= m.viewer.Axes()[pos].Size {
		return
	}
	if err := m.viewer.SetIndex(pos, next); err != nil {
		m.status = err.Error()
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("stackview - " + m.path))
	b.WriteString("\n")

	previewH := m.height - 5
	if previewH < 4 {
		previewH = 4
	}
	b.WriteString(renderPreview(m.viewer.CurrentFrame(), m.width, previewH))
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString(helpStyle.Render("←/→ frame · ↑/↓ channel · g/G first/last · space play/pause · s split channels · q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) statusLine() string {
	src := m.viewer.Source()
	if src == nil {
		return "no image loaded"
	}

	var parts []string
	axes := m.viewer.Axes()
	idx := m.viewer.Indexes()
	for i, axis := range axes {
		parts = append(parts, fmt.Sprintf("%s %d/%d", axis.Kind, idx[i], axis.Size-1))
	}
	w, h := src.Size()
	parts = append(parts, fmt.Sprintf("%dx%d", w, h))

	if f := m.viewer.CurrentFrame(); f != nil && f.Pix != nil {
		min, max, mean := f.Stats()
		parts = append(parts, fmt.Sprintf("range %.0f-%.0f mean %.1f", min, max, mean))
	}
	line := strings.Join(parts, " | ")
	if m.player.IsPlaying() {
		line += " " + playingStyle.Render("▶")
	}
	return line
}

// renderPreview downsamples the frame onto a cols x rows character grid,
// mapping mean luminance per cell onto the intensity ramp. Terminal cells
// are roughly twice as tall as wide, hence the horizontal stretch.
func renderPreview(f *stack.Frame, cols, rows int) string {
	if f == nil || f.Width == 0 || f.Height == 0 {
		return helpStyle.Render("(no frame)")
	}
	if cols < 2 {
		cols = 2
	}

	// Fit the frame into the grid preserving aspect ratio.
	cellW := float64(f.Width) / float64(cols)
	cellH := float64(f.Height) / float64(rows)
	cell := cellW
	if cellH > cell {
		cell = cellH
	}
	outW := int(float64(f.Width) / cell)
	outH := int(float64(f.Height) / (cell * 2))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	lo, hi := previewRange(f)
	scale := 1.0
	if hi > lo {
		scale = 1 / (hi - lo)
	}

	var b strings.Builder
	for cy := 0; cy < outH; cy++ {
		for cx := 0; cx < outW; cx++ {
			x := int((float64(cx) + 0.5) * cell)
			y := int((float64(cy) + 0.5) * cell * 2)
			b.WriteByte(rampChar((luminance(f, x, y) - lo) * scale))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func previewRange(f *stack.Frame) (float64, float64) {
	if f.Pix != nil {
		lo, hi, _ := f.Stats()
		return lo, hi
	}
	// Composite frames are already in display range.
	return 0, 255
}

func luminance(f *stack.Frame, x, y int) float64 {
	v := f.At(x, y)
	switch len(v) {
	case 0:
		return 0
	case 1:
		return v[0]
	default:
		return 0.299*v[0] + 0.587*v[1] + 0.114*v[2]
	}
}
