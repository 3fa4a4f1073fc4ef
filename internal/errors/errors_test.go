package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/errors"
)

func TestIndexError(t *testing.T) {
	err := errors.NewIndexError(1, 5, 5)

	assert.True(t, errors.IsIndexOutOfRange(err))
	assert.False(t, errors.IsDecodeFailure(err))
	assert.Equal(t, 1, err.Axis())
	assert.Equal(t, 5, err.Index())
	assert.Equal(t, 5, err.Size())
	assert.Contains(t, err.Error(), "axis 1 index 5")
}

func TestDecodeError(t *testing.T) {
	cause := stderrors.New("truncated data")
	err := errors.NewDecodeError("decoding frame", 7, cause)

	assert.True(t, errors.IsDecodeFailure(err))
	assert.Equal(t, 7, err.Frame())
	assert.Contains(t, err.Error(), "frame 7")
	assert.True(t, errors.Is(err, cause), "cause must remain in the chain")
}

func TestSourceError(t *testing.T) {
	assert.True(t, errors.IsUnsupportedSource(errors.ErrUnsupportedSource))
	assert.False(t, errors.IsUnsupportedSource(errors.New("other")))

	assert.True(t, errors.IsNoImageLoaded(errors.ErrNoImageLoaded))
	assert.False(t, errors.IsNoImageLoaded(errors.ErrUnsupportedSource),
		"no-image-loaded and unsupported-source are distinct kinds")
	assert.False(t, errors.IsUnsupportedSource(errors.ErrNoImageLoaded))
}

func TestSeekError(t *testing.T) {
	cause := stderrors.New("pipe closed")
	err := errors.NewSeekError(4, cause)

	assert.True(t, errors.IsSeekFailure(err))
	assert.False(t, errors.IsDecodeFailure(err), "seek failures are not decode failures")
	assert.Equal(t, 4, err.Frame())
	assert.True(t, errors.Is(err, cause))
}

func TestAxisError(t *testing.T) {
	err := errors.NewAxisError(3, 2)

	assert.True(t, errors.IsAxisMismatch(err))
	assert.False(t, errors.IsIndexOutOfRange(err))
	assert.Contains(t, err.Error(), "length 3")
	assert.Contains(t, err.Error(), "axis count 2")
}

func TestFileAccessDenied(t *testing.T) {
	err := errors.NewFileError("opening frame", "/tmp/x.png", errors.FileAccessDenied, nil)
	assert.True(t, errors.IsFileAccessDenied(err))
	assert.False(t, errors.IsFileNotFound(err))
}

func TestFileError(t *testing.T) {
	err := errors.NewFileError("file not found", "/tmp/x.png", errors.FileNotFound, nil)
	assert.True(t, errors.IsFileNotFound(err))
	assert.Equal(t, "/tmp/x.png", err.Path())
	assert.Contains(t, err.Error(), "/tmp/x.png")
}

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.NewIndexError(0, 3, 3)
	wrapped := errors.Wrapf(cause, "stepping axis %d", 0)

	require.Error(t, wrapped)
	assert.True(t, errors.IsIndexOutOfRange(wrapped), "wrapping must keep the kind discoverable")

	var idxErr *errors.IndexError
	require.True(t, errors.As(wrapped, &idxErr))
	assert.Equal(t, 3, idxErr.Index())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "context"))
	assert.Nil(t, errors.Wrapf(nil, "context %d", 1))
}
