//go:build !nogui
// +build !nogui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"stackview/internal/stack"
)

// StackDisplay renders the current frame and reports the image pixel under
// the cursor plus mouse wheel steps, the two events the viewer shell needs
// from its rendering surface.
type StackDisplay struct {
	widget.BaseWidget

	img   *canvas.Image
	frame *stack.Frame

	// onHover receives image pixel coordinates, ok=false when the cursor
	// leaves the frame.
	onHover func(x, y int, ok bool)
	// onWheel receives +1/-1 frame steps from the scroll wheel.
	onWheel func(delta int)
}

var _ desktop.Hoverable = (*StackDisplay)(nil)
var _ fyne.Scrollable = (*StackDisplay)(nil)

// NewStackDisplay creates an empty display surface.
func NewStackDisplay(onHover func(x, y int, ok bool), onWheel func(delta int)) *StackDisplay {
	s := &StackDisplay{
		img:     canvas.NewImageFromImage(nil),
		onHover: onHover,
		onWheel: onWheel,
	}
	s.img.FillMode = canvas.ImageFillContain
	s.img.ScaleMode = canvas.ImageScalePixels
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *StackDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.img)
}

// SetFrame swaps in a new frame buffer and repaints.
func (s *StackDisplay) SetFrame(f *stack.Frame) {
	s.frame = f
	if f != nil {
		s.img.Image = f.Image()
	} else {
		s.img.Image = nil
	}
	s.img.Refresh()
}

// Frame returns the frame currently on screen.
func (s *StackDisplay) Frame() *stack.Frame {
	return s.frame
}

// MouseIn implements desktop.Hoverable.
func (s *StackDisplay) MouseIn(ev *desktop.MouseEvent) {
	s.MouseMoved(ev)
}

// MouseMoved reports the image pixel under the cursor.
func (s *StackDisplay) MouseMoved(ev *desktop.MouseEvent) {
	if s.onHover == nil {
		return
	}
	x, y, ok := s.pixelAt(ev.Position)
	s.onHover(x, y, ok)
}

// MouseOut implements desktop.Hoverable.
func (s *StackDisplay) MouseOut() {
	if s.onHover != nil {
		s.onHover(0, 0, false)
	}
}

// Scrolled steps the frame axis with the mouse wheel.
func (s *StackDisplay) Scrolled(ev *fyne.ScrollEvent) {
	if s.onWheel == nil || ev.Scrolled.DY == 0 {
		return
	}
	if ev.Scrolled.DY < 0 {
		s.onWheel(1)
	} else {
		s.onWheel(-1)
	}
}

// pixelAt maps a widget position to image pixel coordinates, accounting for
// the contain-fit letterboxing of the canvas image.
func (s *StackDisplay) pixelAt(pos fyne.Position) (int, int, bool) {
	if s.frame == nil || s.frame.Width == 0 || s.frame.Height == 0 {
		return 0, 0, false
	}
	size := s.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return 0, 0, false
	}

	fw := float32(s.frame.Width)
	fh := float32(s.frame.Height)
	scale := size.Width / fw
	if size.Height/fh < scale {
		scale = size.Height / fh
	}
	if scale <= 0 {
		return 0, 0, false
	}

	offX := (size.Width - fw*scale) / 2
	offY := (size.Height - fh*scale) / 2
	x := int((pos.X - offX) / scale)
	y := int((pos.Y - offY) / scale)
	if x < 0 || y < 0 || x >= s.frame.Width || y >= s.frame.Height {
		return 0, 0, false
	}
	return x, y, true
}
