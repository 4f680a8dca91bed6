package ir

import (
	"errors"
	"fmt"

	"github.com/signadot/jsont/ir/pointer"
)

var (
	ErrParse = errors.New("parse error")

	ErrNotFound        = errors.New("not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrBadIndex        = fmt.Errorf("%w: bad array index", ErrNotFound)
	ErrBadPointer      = pointer.ErrSyntax
)

// PathError records a failure to address a node with a pointer.
type PathError struct {
	Pointer pointer.Pointer
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %v", e.Pointer.String(), e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func pathErrorf(p pointer.Pointer, err error, format string, args ...any) error {
	return &PathError{Pointer: p, Err: fmt.Errorf("%w: "+format, append([]any{err}, args...)...)}
}
