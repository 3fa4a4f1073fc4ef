package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/errors"
	"stackview/internal/stack"
)

// denseStack builds a (rows, cols, extra...) stack where every sample value
// encodes its own coordinates, so slices are easy to verify.
func denseStack(t *testing.T, shape ...int) *stack.Dense {
	t.Helper()
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	src, err := stack.NewDense(data, shape...)
	require.NoError(t, err)
	return src
}

func TestResolveDenseSlice(t *testing.T) {
	// Shape (100,100,5): resolving index 3 must return the 100x100 plane at
	// depth 3.
	src := denseStack(t, 100, 100, 5)
	axes, err := stack.Describe(src, false)
	require.NoError(t, err)
	require.Len(t, axes, 1)
	assert.Equal(t, 5, axes[0].Size)

	f, err := stack.Resolve(src, axes, []int{3})
	require.NoError(t, err)
	assert.Equal(t, 100, f.Width)
	assert.Equal(t, 100, f.Height)
	assert.Equal(t, 1, f.Channels)
	require.Len(t, f.Pix, 100*100)

	// Element (r,c,3) of the row-major array sits at (r*100+c)*5 + 3.
	assert.Equal(t, float64(3), f.Pix[0])
	assert.Equal(t, float64((42*100+17)*5+3), f.Pix[42*100+17])
}

func TestResolveDenseOwnedCopy(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	src, err := stack.NewDense(data, 2, 2)
	require.NoError(t, err)

	f, err := stack.Resolve(src, nil, nil)
	require.NoError(t, err)

	data[0] = 99
	assert.Equal(t, float64(1), f.Pix[0], "frame must not alias source storage")
}

func TestResolveBounds(t *testing.T) {
	src := denseStack(t, 10, 10, 5)
	axes, err := stack.Describe(src, false)
	require.NoError(t, err)

	t.Run("index one past max fails", func(t *testing.T) {
		_, err := stack.Resolve(src, axes, []int{5})
		require.Error(t, err)
		assert.True(t, errors.IsIndexOutOfRange(err))
	})

	t.Run("negative index fails", func(t *testing.T) {
		_, err := stack.Resolve(src, axes, []int{-1})
		require.Error(t, err)
		assert.True(t, errors.IsIndexOutOfRange(err))
	})

	t.Run("index at max succeeds", func(t *testing.T) {
		_, err := stack.Resolve(src, axes, []int{4})
		assert.NoError(t, err)
	})

	t.Run("length mismatch fails", func(t *testing.T) {
		_, err := stack.Resolve(src, axes, []int{0, 0})
		require.Error(t, err)
		assert.True(t, errors.IsAxisMismatch(err))
	})
}

func TestResolveBoundsCheckedBeforeSeek(t *testing.T) {
	r := newFakeReader([]string{"L"}, 5, 4, 4)
	src, err := stack.NewFile(r)
	require.NoError(t, err)
	axes, err := stack.Describe(src, false)
	require.NoError(t, err)

	_, err = stack.Resolve(src, axes, []int{5})
	require.Error(t, err)
	assert.True(t, errors.IsIndexOutOfRange(err))
	assert.Empty(t, r.seeks, "out-of-range index must be rejected before any seek")
}

func TestResolveIdempotent(t *testing.T) {
	src := denseStack(t, 20, 20, 4)
	axes, err := stack.Describe(src, false)
	require.NoError(t, err)

	a, err := stack.Resolve(src, axes, []int{2})
	require.NoError(t, err)
	b, err := stack.Resolve(src, axes, []int{2})
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix, "same selection must yield bit-identical buffers")
}

func TestResolveFileComposite(t *testing.T) {
	// channels={R,G,B}, frames=10, separateChannels=false: resolve seeks to
	// frame 4 and returns the composite 3-channel buffer.
	r := newFakeReader([]string{"R", "G", "B"}, 10, 4, 4)
	src, err := stack.NewFile(r)
	require.NoError(t, err)

	axes, err := stack.Describe(src, false)
	require.NoError(t, err)
	require.Len(t, axes, 1)
	assert.Equal(t, 10, axes[0].Size)

	f, err := stack.Resolve(src, axes, []int{4})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, r.seeks)
	assert.Equal(t, 3, f.Channels)
	assert.NotNil(t, f.Img, "composite path should use the display decode")
}

func TestResolveFileChannelExtraction(t *testing.T) {
	// Same source with separateChannels=true: indexes (1,4) seek frame 4 and
	// extract channel 1.
	r := newFakeReader([]string{"R", "G", "B"}, 10, 4, 4)
	src, err := stack.NewFile(r)
	require.NoError(t, err)

	axes, err := stack.Describe(src, true)
	require.NoError(t, err)
	require.Len(t, axes, 2)

	f, err := stack.Resolve(src, axes, []int{1, 4})
	require.NoError(t, err)

	assert.Equal(t, []int{4}, r.seeks, "frame seek must happen exactly once, before extraction")
	assert.Equal(t, 1, f.Channels)
	require.Len(t, f.Pix, 16)
	// Sample encoding is frame*1000 + pixel*10 + band.
	assert.Equal(t, float64(4*1000+0*10+1), f.Pix[0])
	assert.Equal(t, float64(4*1000+7*10+1), f.Pix[7])
}

func TestResolveSeekFailureSurfaced(t *testing.T) {
	r := newFakeReader([]string{"L"}, 5, 4, 4)
	r.seekErr = errors.New("truncated file")
	src, err := stack.NewFile(r)
	require.NoError(t, err)

	axes, err := stack.Describe(src, false)
	require.NoError(t, err)

	_, err = stack.Resolve(src, axes, []int{2})
	require.Error(t, err)
	assert.True(t, errors.IsSeekFailure(err))
	assert.False(t, errors.IsDecodeFailure(err))
}

func TestResolveDisplayFallback(t *testing.T) {
	r := newFakeReader([]string{"R", "G", "B"}, 10, 4, 4)
	r.displayErr = errors.NewDecodeError("no native display format", 0, nil)
	src, err := stack.NewFile(r)
	require.NoError(t, err)

	axes, err := stack.Describe(src, false)
	require.NoError(t, err)

	f, err := stack.Resolve(src, axes, []int{2})
	require.NoError(t, err, "display failure must be recovered by the raw path")
	assert.Nil(t, f.Img)
	require.Len(t, f.Pix, 4*4*3)
	assert.Equal(t, float64(2*1000+0*10+0), f.Pix[0])
}

func TestResolveNilSource(t *testing.T) {
	_, err := stack.Resolve(nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedSource(err))
}
