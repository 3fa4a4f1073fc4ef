// Package errors provides standardized error handling for the stackview
// application. It defines common error types, constants, and helper functions
// for consistent error creation, wrapping, and handling across the
// application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrUnsupportedSource = NewSourceError("unsupported image source", nil)
	ErrNoImageLoaded     = &SourceError{ApplicationError{msg: "no image loaded", kind: NoImageLoaded}}
	ErrFileNotFound      = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidConfig     = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Source error kinds
	UnsupportedSource
	NoImageLoaded
	// Navigation error kinds
	IndexOutOfRange
	AxisMismatch
	// Decode error kinds
	DecodeFailure
	SeekFailure
	// File error kinds
	FileNotFound
	FileAccessDenied
	// Config error kinds
	InvalidConfig
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// SourceError represents errors related to the image source (missing,
// unsupported, or not yet loaded).
type SourceError struct {
	ApplicationError
}

// NewSourceError creates a new source error
func NewSourceError(msg string, err error) *SourceError {
	return &SourceError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: UnsupportedSource,
		},
	}
}

// IndexError represents a navigation index that exceeds its axis bound.
type IndexError struct {
	ApplicationError
	axis  int
	index int
	size  int
}

// NewIndexError creates a new index error for the given axis position.
func NewIndexError(axis, index, size int) *IndexError {
	return &IndexError{
		ApplicationError: ApplicationError{
			msg:  "index out of range",
			kind: IndexOutOfRange,
		},
		axis:  axis,
		index: index,
		size:  size,
	}
}

// Error returns the index error message
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: axis %d index %d (size %d)", e.msg, e.axis, e.index, e.size)
}

// Axis returns the axis position associated with the error
func (e *IndexError) Axis() int {
	return e.axis
}

// Index returns the offending index value
func (e *IndexError) Index() int {
	return e.index
}

// Size returns the axis size the index was checked against
func (e *IndexError) Size() int {
	return e.size
}

// NewAxisError reports an index vector whose length does not match the axis
// set it navigates.
func NewAxisError(got, want int) error {
	return &ApplicationError{
		msg:  fmt.Sprintf("index vector length %d does not match axis count %d", got, want),
		kind: AxisMismatch,
	}
}

// DecodeError represents a failure to decode frame pixel data.
type DecodeError struct {
	ApplicationError
	frame int
}

// NewDecodeError creates a new decode error for the given frame index.
func NewDecodeError(msg string, frame int, err error) *DecodeError {
	return &DecodeError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: DecodeFailure,
		},
		frame: frame,
	}
}

// Error returns the decode error message
func (e *DecodeError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: frame %d: %v", e.msg, e.frame, e.err)
	}
	return fmt.Sprintf("%s: frame %d", e.msg, e.frame)
}

// Frame returns the frame index associated with the error
func (e *DecodeError) Frame() int {
	return e.frame
}

// NewSeekError reports a failure positioning a reader at a frame.
func NewSeekError(frame int, err error) *DecodeError {
	return &DecodeError{
		ApplicationError: ApplicationError{
			msg:  "seeking frame",
			err:  err,
			kind: SeekFailure,
		},
		frame: frame,
	}
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsUnsupportedSource checks if the error marks an unusable image source
func IsUnsupportedSource(err error) bool {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Kind() == UnsupportedSource
	}
	return false
}

// IsNoImageLoaded checks if the error reports navigation without a source
func IsNoImageLoaded(err error) bool {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Kind() == NoImageLoaded
	}
	return false
}

// IsAxisMismatch checks if the error is an index vector length mismatch
func IsAxisMismatch(err error) bool {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind() == AxisMismatch
	}
	return false
}

// IsIndexOutOfRange checks if the error is an index bound violation
func IsIndexOutOfRange(err error) bool {
	var idxErr *IndexError
	if errors.As(err, &idxErr) {
		return idxErr.Kind() == IndexOutOfRange
	}
	return false
}

// IsDecodeFailure checks if the error is a frame decode failure
func IsDecodeFailure(err error) bool {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.Kind() == DecodeFailure
	}
	return false
}

// IsSeekFailure checks if the error is a frame seek failure
func IsSeekFailure(err error) bool {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.Kind() == SeekFailure
	}
	return false
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file permission error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
