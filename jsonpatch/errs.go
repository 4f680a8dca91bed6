package jsonpatch

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedPatch = errors.New("malformed patch")
	ErrPathNotFound   = errors.New("path not found")
	ErrTestFailed     = errors.New("test failed")
	ErrInvalidMove    = errors.New("invalid move")
)

// OpError reports the operation which failed while applying a patch.
type OpError struct {
	Index int
	Op    Operation
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %v", e.Index, e.Op.Op, e.Op.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
