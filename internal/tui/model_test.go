package tui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	alsrt "github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/config"
)

// sequenceDir writes a 3-frame grayscale sequence and returns its directory.
func sequenceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		img := image.NewGray(image.Rect(0, 0, 4, 4))
		for p := range img.Pix {
			img.Pix[p] = uint8(i * 40)
		}
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i)))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}
	return dir
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.New()
	cfg.Sequence.Pattern = "*.png"
	m, err := New(cfg, sequenceDir(t))
	require.NoError(t, err)
	return m
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelOpensStack(t *testing.T) {
	m := newTestModel(t)
	alsrt.Equal(t, []int{0}, m.viewer.Indexes())
	alsrt.Contains(t, m.statusLine(), "frame 0/2")
	alsrt.Contains(t, m.statusLine(), "4x4")
}

func TestModelFrameNavigation(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg(tea.KeyRight))
	alsrt.Equal(t, []int{1}, m.viewer.Indexes())

	m.Update(keyMsg(tea.KeyLeft))
	alsrt.Equal(t, []int{0}, m.viewer.Indexes())

	// Clamped at the first frame.
	m.Update(keyMsg(tea.KeyLeft))
	alsrt.Equal(t, []int{0}, m.viewer.Indexes())

	m.Update(runeMsg('G'))
	alsrt.Equal(t, []int{2}, m.viewer.Indexes())
	m.Update(runeMsg('g'))
	alsrt.Equal(t, []int{0}, m.viewer.Indexes())
}

func TestModelPlayback(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg(tea.KeySpace))
	alsrt.True(t, m.player.IsPlaying())
	require.NotNil(t, cmd, "playing schedules a tick")

	_, cmd = m.Update(tickMsg(time.Now()))
	alsrt.Equal(t, []int{1}, m.viewer.Indexes())
	require.NotNil(t, cmd, "still playing, another tick follows")

	_, cmd = m.Update(tickMsg(time.Now()))
	alsrt.Equal(t, []int{2}, m.viewer.Indexes())
	alsrt.False(t, m.player.IsPlaying(), "last frame stops playback")
	assert.Nil(t, cmd)
}

func TestModelPauseStopsTicks(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg(tea.KeySpace))
	require.True(t, m.player.IsPlaying())

	m.Update(keyMsg(tea.KeySpace))
	alsrt.False(t, m.player.IsPlaying())

	_, cmd := m.Update(tickMsg(time.Now()))
	alsrt.Equal(t, []int{0}, m.viewer.Indexes(), "paused player ignores stale ticks")
	assert.Nil(t, cmd)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runeMsg('q'))
	require.NotNil(t, cmd)
	alsrt.Equal(t, tea.Quit(), cmd())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})

	out := m.View()
	alsrt.Contains(t, out, "stackview")
	alsrt.Contains(t, out, "frame 0/2")
}
