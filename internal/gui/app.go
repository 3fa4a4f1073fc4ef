//go:build !nogui
// +build !nogui

package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"stackview/internal/config"
	"stackview/internal/imgio"
	"stackview/internal/log"
	"stackview/internal/stack"
	"stackview/internal/watch"
)

// App is the GUI application: one window showing the current frame, a slider
// per navigable axis, play/pause controls and a status line with the current
// indexes, frame dimensions and the pixel value under the cursor.
//
// Navigation runs through a session: the fyne event goroutine, the playback
// ticker and the reload watcher all mutate the viewer from their own
// goroutines, and the session is what keeps them from interleaving.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config

	sess *session

	display   *StackDisplay
	status    *widget.Label
	sliders   []*widget.Slider
	sliderBox *fyne.Container

	separateItem *fyne.MenuItem

	// openMu guards the open path and its reload watcher; Open can be
	// entered from the menu, the toolbar and the watcher callback.
	openMu  sync.Mutex
	watcher *watch.Watcher
	path    string

	// hoverMu guards the cursor position, written by the fyne event
	// goroutine and read when the playback ticker redraws the status line.
	hoverMu  sync.Mutex
	hoverX   int
	hoverY   int
	hovering bool
}

// NewApp creates the GUI application.
func NewApp(cfg *config.Config) *App {
	fyneApp := app.NewWithID("io.github.stackview")

	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		sess:    newSession(),
		status:  widget.NewLabel("no image loaded"),
	}

	a.display = NewStackDisplay(a.handleHover, a.handleWheel)
	a.sliderBox = container.NewVBox()

	a.sess.onAxesChanged(func(axes stack.AxisSet) { a.rebuildSliders(axes) })
	a.sess.onFrameChanged(func(st snapshot) {
		a.display.SetFrame(st.frame)
		a.syncSliders(st.indexes)
		a.updateStatus(st)
	})

	if err := a.sess.setSeparateChannels(cfg.Display.SeparateChannels); err != nil {
		log.Warnf("applying channel separation default: %v", err)
	}

	a.mainWindow = fyneApp.NewWindow("stackview")
	a.mainWindow.Resize(fyne.NewSize(900, 700))
	a.mainWindow.SetMainMenu(a.buildMenu())
	a.mainWindow.SetContent(a.buildContent())
	return a
}

// Run opens path (when non-empty) and enters the event loop.
func (a *App) Run(path string) {
	if path != "" {
		a.Open(path)
	}
	a.mainWindow.ShowAndRun()
	a.openMu.Lock()
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.openMu.Unlock()
}

func (a *App) buildContent() fyne.CanvasObject {
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), a.play),
		widget.NewToolbarAction(theme.MediaPauseIcon(), a.pause),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.openDialog),
	)
	bottom := container.NewVBox(a.sliderBox, a.status)
	return container.NewBorder(toolbar, bottom, nil, nil, a.display)
}

func (a *App) buildMenu() *fyne.MainMenu {
	openItem := fyne.NewMenuItem("Open...", a.openDialog)
	a.separateItem = fyne.NewMenuItem("Separate Channels", a.toggleSeparateChannels)
	a.separateItem.Checked = a.cfg.Display.SeparateChannels
	return fyne.NewMainMenu(
		fyne.NewMenu("File", openItem),
		fyne.NewMenu("View", a.separateItem),
	)
}

// Open loads the stack at path. Failures leave the previous stack (or the
// empty "no image loaded" state) in place.
func (a *App) Open(path string) {
	a.openMu.Lock()
	defer a.openMu.Unlock()

	reader, err := imgio.Open(path, a.cfg.Sequence.Pattern)
	if err != nil {
		a.openFailed(path, err)
		return
	}
	src, err := stack.NewFile(reader)
	if err != nil {
		a.openFailed(path, err)
		return
	}
	if err := a.sess.setSource(src); err != nil {
		a.openFailed(path, err)
		return
	}

	a.path = path
	a.mainWindow.SetTitle("stackview - " + path)
	log.Info("opened %s (%d frames, %d bands)", path, reader.Frames(), len(reader.Bands()))
	a.rewatch(path)
}

func (a *App) openFailed(path string, err error) {
	log.Errorf("opening %s: %v", path, err)
	dialog.ShowError(err, a.mainWindow)
	if !a.sess.state().loaded {
		a.status.SetText("no image loaded")
	}
}

// rewatch points the reload watcher at the newly opened path. Callers hold
// openMu.
func (a *App) rewatch(path string) {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if !a.cfg.Watch.Reload {
		return
	}
	w, err := watch.New(path, func(string) {
		log.Info("source changed on disk, reloading %s", path)
		a.Open(path)
	})
	if err != nil {
		log.Warnf("reload watching disabled for %s: %v", path, err)
		return
	}
	a.watcher = w
	a.watcher.Start()
}

func (a *App) openDialog() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		a.Open(path)
	}, a.mainWindow)
}

func (a *App) toggleSeparateChannels() {
	next := !a.separateItem.Checked
	if err := a.sess.setSeparateChannels(next); err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}
	a.separateItem.Checked = next
	a.mainWindow.MainMenu().Refresh()
}

// play starts a forward pass over the frame axis, stepping at the configured
// frame rate until the last frame or a pause. The session hands out at most
// one pass at a time, so repeated clicks never stack tickers.
func (a *App) play() {
	if !a.sess.play() {
		return
	}
	interval := time.Duration(float64(time.Second) / a.cfg.Playback.FPS)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			advanced, err := a.sess.step()
			if err != nil {
				log.Errorf("playback stopped: %v", err)
				return
			}
			if !advanced {
				return
			}
		}
	}()
}

func (a *App) pause() {
	a.sess.pause()
}

// rebuildSliders recreates one slider per axis whenever the axis set is
// recomputed, mirroring the viewer's control lifecycle.
func (a *App) rebuildSliders(axes stack.AxisSet) {
	a.sliderBox.Objects = nil
	a.sliders = a.sliders[:0]

	for i, axis := range axes {
		i := i
		s := widget.NewSlider(0, float64(axis.Size-1))
		s.Step = 1
		s.OnChanged = func(v float64) {
			if err := a.sess.setIndex(i, int(v)); err != nil {
				log.Debugf("slider %d: %v", i, err)
			}
		}
		a.sliders = append(a.sliders, s)
		label := fmt.Sprintf("%s (%d)", axis.Kind, axis.Size)
		a.sliderBox.Add(container.NewBorder(nil, nil, widget.NewLabel(label), nil, s))
	}
	a.sliderBox.Refresh()
}

// syncSliders pushes the current indexes back into the sliders after
// programmatic changes (play steps, wheel scrolling).
func (a *App) syncSliders(idx []int) {
	for i, s := range a.sliders {
		if i >= len(idx) {
			break
		}
		if int(s.Value) != idx[i] {
			s.Value = float64(idx[i])
			s.Refresh()
		}
	}
}

func (a *App) handleWheel(delta int) {
	if !a.cfg.Display.WheelScrollsFrame {
		return
	}
	if _, err := a.sess.stepFrame(delta); err != nil {
		log.Debugf("wheel step: %v", err)
	}
}

func (a *App) handleHover(x, y int, ok bool) {
	a.hoverMu.Lock()
	a.hoverX, a.hoverY, a.hovering = x, y, ok
	a.hoverMu.Unlock()
	a.updateStatus(a.sess.state())
}

// updateStatus renders the "2/9; 1/2; 512x512; x=10, y=20, value=[42]" line.
func (a *App) updateStatus(st snapshot) {
	if !st.loaded {
		a.status.SetText("no image loaded")
		return
	}

	var b strings.Builder
	for i, axis := range st.axes {
		fmt.Fprintf(&b, "%d/%d; ", st.indexes[i], axis.Size-1)
	}
	fmt.Fprintf(&b, "%dx%d", st.width, st.height)

	a.hoverMu.Lock()
	x, y, hovering := a.hoverX, a.hoverY, a.hovering
	a.hoverMu.Unlock()
	if hovering && st.frame != nil {
		if v := st.frame.At(x, y); v != nil {
			fmt.Fprintf(&b, "; x=%d, y=%d, value=%v", x, y, v)
		}
	}
	a.status.SetText(b.String())
}
