package imgio

import (
	"os"
	"path/filepath"
	"strings"

	"stackview/internal/errors"
	"stackview/internal/stack"
)

// Open builds a frame reader for path: a directory becomes an image sequence
// matched by pattern, a .gif becomes an animated GIF reader, and any other
// image file becomes a single-frame sequence.
func Open(path, pattern string) (stack.FrameReader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewFileError("opening stack", path, fileKind(err), err)
	}
	if info.IsDir() {
		return OpenSequence(path, pattern)
	}
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return OpenGIF(path)
	}
	return OpenFile(path)
}

// fileKind tells permission failures apart from missing files.
func fileKind(err error) errors.ErrorKind {
	if os.IsPermission(err) {
		return errors.FileAccessDenied
	}
	return errors.FileNotFound
}
