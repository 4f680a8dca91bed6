package template

import (
	"errors"
	"fmt"

	"github.com/signadot/jsont/eval"
	"github.com/signadot/jsont/ir/pointer"
)

var (
	ErrNoMatchingRule             = errors.New("no matching rule and no identity default")
	ErrMalformedPattern           = errors.New("malformed pattern")
	ErrMalformedTemplate          = errors.New("malformed template")
	ErrCircularSelection          = errors.New("circular selection")
	ErrInfiniteRecursionSuspected = errors.New("infinite recursion suspected")
	ErrEval                       = eval.ErrEval
)

// Error locates a failure of Transform: the rule being run, if any, and
// the pointer of the node it was run on.
type Error struct {
	Rule    string
	Pointer pointer.Pointer
	Err     error
}

func (e *Error) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("at %q: %v", e.Pointer, e.Err)
	}
	return fmt.Sprintf("rule %s at %q: %v", e.Rule, e.Pointer, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedTemplate}, args...)...)
}
