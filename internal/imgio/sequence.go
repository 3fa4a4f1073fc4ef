// Package imgio provides the frame readers behind file-backed stacks: an
// image-sequence reader over a directory of single-frame files and an
// animated GIF reader. Both expose metadata without decoding pixels and
// materialize only the frame the viewer is looking at.
package imgio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	// Frame file formats decodable by a sequence.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"stackview/internal/errors"
)

// Sequence reads an ordered set of single-frame image files as one stack.
// Frame N is file N in lexical order; seeking records the index and decoding
// touches exactly one file, so arbitrarily long sequences open instantly.
type Sequence struct {
	files []string
	bands []string
	w, h  int

	cur     int
	decoded image.Image // cache for the current frame, dropped on seek
}

// OpenSequence scans dir for frame files matching pattern (a glob such as
// "*.{png,tif}") and builds a sequence over them in lexical order.
func OpenSequence(dir, pattern string) (*Sequence, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "bad sequence pattern %q", pattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("reading sequence directory", dir, fileKind(err), err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !g.Match(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, errors.NewFileError("no frame files match pattern "+pattern, dir, errors.FileNotFound, nil)
	}
	sort.Strings(files)

	return newSequence(files)
}

// OpenFile builds a single-frame sequence over one image file.
func OpenFile(path string) (*Sequence, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewFileError("file not found", path, fileKind(err), err)
	}
	return newSequence([]string{path})
}

func newSequence(files []string) (*Sequence, error) {
	// Header-only read of the first file: band names and dimensions come
	// from the decode config, no pixel data is touched.
	f, err := os.Open(files[0])
	if err != nil {
		return nil, errors.NewFileError("opening first frame", files[0], fileKind(err), err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, errors.NewDecodeError("reading frame header", 0, err)
	}

	return &Sequence{
		files: files,
		bands: bandsForModel(cfg.ColorModel),
		w:     cfg.Width,
		h:     cfg.Height,
	}, nil
}

// Bands returns the channel names of a frame.
func (s *Sequence) Bands() []string {
	return s.bands
}

// Frames returns the number of files in the sequence.
func (s *Sequence) Frames() int {
	return len(s.files)
}

// Size returns frame width and height.
func (s *Sequence) Size() (int, int) {
	return s.w, s.h
}

// Seek positions the sequence at frame i without decoding it.
func (s *Sequence) Seek(i int) error {
	if i < 0 || i >= len(s.files) {
		return errors.NewIndexError(0, i, len(s.files))
	}
	if i != s.cur {
		s.decoded = nil
	}
	s.cur = i
	return nil
}

func (s *Sequence) decode() (image.Image, error) {
	if s.decoded != nil {
		return s.decoded, nil
	}
	f, err := os.Open(s.files[s.cur])
	if err != nil {
		return nil, errors.NewFileError("opening frame", s.files[s.cur], fileKind(err), err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewDecodeError("decoding frame", s.cur, err)
	}
	s.decoded = img
	return img, nil
}

// Raw decodes the current frame as band-interleaved float64 samples.
func (s *Sequence) Raw() ([]float64, error) {
	img, err := s.decode()
	if err != nil {
		return nil, err
	}
	return rawSamples(img, s.w, s.h, len(s.bands)), nil
}

// Display decodes the current frame to a display-ready image.
func (s *Sequence) Display() (image.Image, error) {
	return s.decode()
}

// PixelAt reports the current frame's sample values at (x, y).
func (s *Sequence) PixelAt(x, y int) ([]float64, error) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return nil, errors.NewIndexError(0, x, s.w)
	}
	img, err := s.decode()
	if err != nil {
		return nil, err
	}
	return pixelSamples(img, x, y, len(s.bands)), nil
}

// bandsForModel names the channels implied by a decoded color model.
func bandsForModel(m color.Model) []string {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return []string{"L"}
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model:
		return []string{"R", "G", "B", "A"}
	default:
		// Palette, YCbCr and everything else render as opaque color.
		return []string{"R", "G", "B"}
	}
}

// rawSamples flattens an image into band-interleaved float64 samples in
// 8-bit range (16-bit grayscale keeps its full precision).
func rawSamples(img image.Image, w, h, bands int) []float64 {
	out := make([]float64, w*h*bands)
	b := img.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			copy(out[(y*w+x)*bands:], pixelSamples(img, b.Min.X+x, b.Min.Y+y, bands))
		}
	}
	return out
}

func pixelSamples(img image.Image, x, y, bands int) []float64 {
	var s []float64
	switch im := img.(type) {
	case *image.Gray16:
		return []float64{float64(im.Gray16At(x, y).Y)}
	case *image.Gray:
		return []float64{float64(im.GrayAt(x, y).Y)}
	case *image.NRGBA:
		// Straight alpha: RGBA() would premultiply the color channels.
		c := im.NRGBAAt(x, y)
		s = []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
	case *image.NRGBA64:
		c := im.NRGBA64At(x, y)
		s = []float64{float64(c.R >> 8), float64(c.G >> 8), float64(c.B >> 8), float64(c.A >> 8)}
	default:
		r, g, b, a := img.At(x, y).RGBA()
		s = []float64{float64(r >> 8), float64(g >> 8), float64(b >> 8), float64(a >> 8)}
	}
	if bands == 1 {
		// Luma of whatever the decoder produced.
		return []float64{0.299*s[0] + 0.587*s[1] + 0.114*s[2]}
	}
	return s[:bands]
}
