package imgio

import (
	"image"
	"image/draw"
	"image/gif"
	"os"

	"stackview/internal/errors"
)

// GIF reads an animated GIF as a frame stack. The compressed frames are
// parsed once up front for metadata; compositing onto the canvas happens
// lazily per seek, so only one full RGBA frame is held at a time.
type GIF struct {
	g     *gif.GIF
	w, h  int
	bands []string

	cur        int
	canvas     *image.RGBA
	composited int         // highest frame painted onto the canvas, -1 when empty
	restore    *image.RGBA // pre-draw canvas of the last frame, for DisposalPrevious
}

// OpenGIF parses the GIF structure at path.
func OpenGIF(path string) (*GIF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("opening gif", path, fileKind(err), err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, errors.NewDecodeError("parsing gif", 0, err)
	}
	if len(g.Image) == 0 {
		return nil, errors.NewDecodeError("gif has no frames", 0, nil)
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	return &GIF{
		g:          g,
		w:          w,
		h:          h,
		bands:      []string{"R", "G", "B"},
		composited: -1,
	}, nil
}

// Bands returns the channel names of a composited frame.
func (g *GIF) Bands() []string {
	return g.bands
}

// Frames returns the number of frames in the animation.
func (g *GIF) Frames() int {
	return len(g.g.Image)
}

// Size returns frame width and height.
func (g *GIF) Size() (int, int) {
	return g.w, g.h
}

// Seek positions the reader at frame i, compositing forward from the last
// painted frame. Each finished frame is disposed of per its disposal byte
// (paint-over, clear to background, or restore the prior canvas) before the
// next one is drawn. Seeking backward restarts compositing from frame zero.
func (g *GIF) Seek(i int) error {
	if i < 0 || i >= len(g.g.Image) {
		return errors.NewIndexError(0, i, len(g.g.Image))
	}
	g.cur = i
	if g.canvas == nil || i < g.composited {
		g.canvas = image.NewRGBA(image.Rect(0, 0, g.w, g.h))
		g.composited = -1
		g.restore = nil
	}
	for f := g.composited + 1; f <= i; f++ {
		if f > 0 {
			g.dispose(f - 1)
		}
		g.paint(f)
	}
	g.composited = i
	return nil
}

func (g *GIF) paint(f int) {
	if g.disposalOf(f) == gif.DisposalPrevious {
		g.restore = image.NewRGBA(g.canvas.Bounds())
		copy(g.restore.Pix, g.canvas.Pix)
	} else {
		g.restore = nil
	}
	frame := g.g.Image[f]
	draw.Draw(g.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
}

// dispose applies frame f's disposal byte to the canvas before its successor
// is painted.
func (g *GIF) dispose(f int) {
	switch g.disposalOf(f) {
	case gif.DisposalBackground:
		draw.Draw(g.canvas, g.g.Image[f].Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		if g.restore != nil {
			copy(g.canvas.Pix, g.restore.Pix)
			g.restore = nil
		}
	}
}

func (g *GIF) disposalOf(f int) byte {
	if f < len(g.g.Disposal) {
		return g.g.Disposal[f]
	}
	return gif.DisposalNone
}

func (g *GIF) composite() (*image.RGBA, error) {
	if g.canvas == nil || g.composited != g.cur {
		if err := g.Seek(g.cur); err != nil {
			return nil, err
		}
	}
	return g.canvas, nil
}

// Raw returns the composited current frame as interleaved RGB samples.
func (g *GIF) Raw() ([]float64, error) {
	canvas, err := g.composite()
	if err != nil {
		return nil, err
	}
	out := make([]float64, g.w*g.h*3)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			c := canvas.RGBAAt(x, y)
			i := (y*g.w + x) * 3
			out[i] = float64(c.R)
			out[i+1] = float64(c.G)
			out[i+2] = float64(c.B)
		}
	}
	return out, nil
}

// Display returns a copy of the composited current frame. The copy keeps the
// handed-out frame stable while later seeks repaint the canvas.
func (g *GIF) Display() (image.Image, error) {
	canvas, err := g.composite()
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(canvas.Bounds())
	copy(out.Pix, canvas.Pix)
	return out, nil
}

// PixelAt reports the composited frame's RGB values at (x, y).
func (g *GIF) PixelAt(x, y int) ([]float64, error) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return nil, errors.NewIndexError(0, x, g.w)
	}
	canvas, err := g.composite()
	if err != nil {
		return nil, err
	}
	c := canvas.RGBAAt(x, y)
	return []float64{float64(c.R), float64(c.G), float64(c.B)}, nil
}
