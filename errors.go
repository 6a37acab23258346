package filemap

import (
	"errors"
	"fmt"
	"syscall"
)

// HandleError represents a failure to open or manipulate a file handle.
type HandleError struct {
	Kind HandleErrorKind
	Path string // file the operation was performed on, empty when not known
	Err  error  // wrapped cause, usually a syscall.Errno
}

func (e *HandleError) Error() string {
	msg := handleErrorMessages[e.Kind]
	if msg == "" {
		msg = fmt.Sprintf("unknown handle error kind %d", e.Kind)
	}
	if e.Path != "" && e.Err != nil {
		return fmt.Sprintf("filemap: %s: %s: %v", msg, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("filemap: %s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("filemap: %s: %s", msg, e.Path)
	}
	return fmt.Sprintf("filemap: %s", msg)
}

func (e *HandleError) Unwrap() error {
	return e.Err
}

// Errno returns the native OS error code carried by the error,
// or 0 if there is none.
func (e *HandleError) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}
	return 0
}

// HandleErrorKind identifies the handle operation that failed.
type HandleErrorKind int

const (
	// ErrConvertPath indicates the path could not be converted to the
	// native representation (on Windows, UTF-16 conversion of a path
	// containing a NUL byte)
	ErrConvertPath HandleErrorKind = iota + 1

	// ErrOpenFileHandle indicates the file could not be opened or created
	ErrOpenFileHandle

	// ErrGetFileSize indicates the file size could not be queried
	ErrGetFileSize

	// ErrSetFileSize indicates the file could not be resized
	ErrSetFileSize
)

var handleErrorMessages = map[HandleErrorKind]string{
	ErrConvertPath:    "failed to convert path",
	ErrOpenFileHandle: "failed to open file handle",
	ErrGetFileSize:    "failed to get file size",
	ErrSetFileSize:    "failed to set file size",
}

func newHandleError(kind HandleErrorKind, path string, err error) *HandleError {
	return &HandleError{Kind: kind, Path: path, Err: err}
}

// MappingError represents a failure to establish or manipulate a
// memory mapping.
type MappingError struct {
	Kind MappingErrorKind
	Msg  string // extra detail for ErrMappingFailed, empty otherwise
	Err  error  // wrapped cause, usually a syscall.Errno
}

func (e *MappingError) Error() string {
	msg := mappingErrorMessages[e.Kind]
	if msg == "" {
		msg = fmt.Sprintf("unknown mapping error kind %d", e.Kind)
	}
	if e.Msg != "" {
		return fmt.Sprintf("filemap: %s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("filemap: %s: %v", msg, e.Err)
	}
	return fmt.Sprintf("filemap: %s", msg)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Errno returns the native OS error code carried by the error,
// or 0 if there is none.
func (e *MappingError) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}
	return 0
}

// MappingErrorKind identifies the mapping operation that failed.
type MappingErrorKind int

const (
	// ErrMapMemory indicates the native map call failed
	ErrMapMemory MappingErrorKind = iota + 1

	// ErrMappingFailed indicates the mapping could not be constructed
	// for a reason described by the error message, such as a closed
	// handle or a negative offset
	ErrMappingFailed

	// ErrMappingFileSize indicates the file size could not be queried
	// while trimming the mapping to the file size
	ErrMappingFileSize
)

var mappingErrorMessages = map[MappingErrorKind]string{
	ErrMapMemory:       "failed to map memory",
	ErrMappingFailed:   "mapping failed",
	ErrMappingFileSize: "failed to get file size",
}

func newMappingError(kind MappingErrorKind, err error) *MappingError {
	return &MappingError{Kind: kind, Err: err}
}

func mappingFailed(msg string) *MappingError {
	return &MappingError{Kind: ErrMappingFailed, Msg: msg}
}

// HandleKind returns the handle error kind from an error, or 0 if the
// error is not a HandleError.
func HandleKind(err error) HandleErrorKind {
	var e *HandleError
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MappingKind returns the mapping error kind from an error, or 0 if the
// error is not a MappingError.
func MappingKind(err error) MappingErrorKind {
	var e *MappingError
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
