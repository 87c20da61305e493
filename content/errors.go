package content

import (
	"errors"
	"fmt"
)

// Error kinds returned by the readers. Match them with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrReadFailure = errors.New("read failure")
)

// Error describes a failed load of a file or directory.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == ErrNotFound {
		return fmt.Sprintf("not found: %s", e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to read %s", e.Path)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(path string) error {
	return &Error{Kind: ErrNotFound, Path: path}
}

func readFailure(path string, err error) error {
	return &Error{Kind: ErrReadFailure, Path: path, Err: err}
}
