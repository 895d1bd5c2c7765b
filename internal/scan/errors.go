package scan

import (
	"errors"
	"fmt"
	"io/fs"
)

// Code distinguishes the ways a scan root can be unusable.
type Code uint8

const (
	// CodeIOError is any root failure not covered by a more specific code.
	CodeIOError Code = iota
	// CodeNotFound means the root path does not exist.
	CodeNotFound
	// CodePermissionDenied means the root path exists but is not readable.
	CodePermissionDenied
	// CodeNotADirectory means the root path is not a directory.
	CodeNotADirectory
)

// String returns a short name for the code.
func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "not found"
	case CodePermissionDenied:
		return "permission denied"
	case CodeNotADirectory:
		return "not a directory"
	default:
		return "i/o error"
	}
}

// Error is a fatal, root-level scan failure. Failures on entries below the
// root never produce one; they are recorded on the entry's node instead.
type Error struct {
	// Code classifies the failure.
	Code Code
	// Path is the scan root that failed.
	Path string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scanning %q: %s: %v", e.Path, e.Code, e.Err)
	}

	return fmt.Sprintf("scanning %q: %s", e.Path, e.Code)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// classify maps an os error on the root to a Code.
func classify(err error) Code {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return CodePermissionDenied
	default:
		return CodeIOError
	}
}

// RootError wraps err as a fatal, classified failure for path.
func RootError(path string, err error) *Error {
	return &Error{Code: classify(err), Path: path, Err: err}
}
