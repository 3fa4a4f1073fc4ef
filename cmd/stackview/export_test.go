package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/errors"
)

// writeGraySequence writes n grayscale frames whose pixels hold the frame
// index, so exported files can be told apart.
func writeGraySequence(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		img := image.NewGray(image.Rect(0, 0, 4, 4))
		for p := range img.Pix {
			img.Pix[p] = uint8(i * 40)
		}
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i)))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}
}

func decodeGray(t *testing.T, path string) *image.Gray {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok, "exported grayscale frames decode as gray")
	return gray
}

func TestExportSingleFrame(t *testing.T) {
	dir := t.TempDir()
	writeGraySequence(t, dir, 3)
	out := t.TempDir()

	err := runExport(dir, "*.png", exportOptions{outDir: out, frame: 1})
	require.NoError(t, err)

	img := decodeGray(t, filepath.Join(out, "frame_0001.png"))
	assert.Equal(t, uint8(40), img.Pix[0])
}

func TestExportAllFrames(t *testing.T) {
	dir := t.TempDir()
	writeGraySequence(t, dir, 3)
	out := t.TempDir()

	err := runExport(dir, "*.png", exportOptions{outDir: out, all: true})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		img := decodeGray(t, filepath.Join(out, fmt.Sprintf("frame_%04d.png", i)))
		assert.Equal(t, uint8(i*40), img.Pix[0], "frame %d", i)
	}
}

// A stack without a frame axis has exactly one frame: asking for --frame 3
// must fail instead of writing a mislabeled frame_0003.png.
func TestExportFrameOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeGraySequence(t, dir, 1)
	out := t.TempDir()

	err := runExport(dir, "*.png", exportOptions{outDir: out, frame: 3})
	require.Error(t, err)
	assert.True(t, errors.IsIndexOutOfRange(err))

	entries, readErr := os.ReadDir(out)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no files are written for a rejected frame index")
}

func TestExportFrameOutOfRangeMultiFrame(t *testing.T) {
	dir := t.TempDir()
	writeGraySequence(t, dir, 3)

	err := runExport(dir, "*.png", exportOptions{outDir: t.TempDir(), frame: 3})
	require.Error(t, err)
	assert.True(t, errors.IsIndexOutOfRange(err))
}

func TestExportChannelOutOfRange(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 255})
	f, err := os.Create(filepath.Join(dir, "color.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	t.Run("beyond the channel axis", func(t *testing.T) {
		err := runExport(filepath.Join(dir, "color.png"), "*.png",
			exportOptions{outDir: t.TempDir(), separate: true, channel: 7})
		require.Error(t, err)
		assert.True(t, errors.IsIndexOutOfRange(err))
	})

	t.Run("without channel splitting", func(t *testing.T) {
		err := runExport(filepath.Join(dir, "color.png"), "*.png",
			exportOptions{outDir: t.TempDir(), channel: 1})
		require.Error(t, err)
		assert.True(t, errors.IsIndexOutOfRange(err))
	})
}
