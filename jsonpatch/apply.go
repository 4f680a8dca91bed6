package jsonpatch

import (
	"errors"
	"fmt"

	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
)

// Apply applies patch to original and returns the result. If any
// operation fails, Apply returns an *OpError and no document. original
// and patch are not modified and the result shares no nodes with them.
func Apply(original *ir.Node, patch Patch) (*ir.Node, error) {
	work := original.Clone()
	for i := range patch {
		op := &patch[i]
		next, err := applyOp(work, op)
		if err != nil {
			if debug.Patch() {
				debug.Logf("patch op %d %s failed: %v\n", i, op, err)
			}
			return nil, &OpError{Index: i, Op: *op, Err: err}
		}
		work = next
		if debug.Patch() {
			debug.Logf("patch op %d %s gave %s\n", i, op, encode.MustString(work))
		}
	}
	return work, nil
}

func applyOp(work *ir.Node, op *Operation) (*ir.Node, error) {
	switch op.Op {
	case OpAdd:
		return pathErr(ir.Insert(work, op.Path, op.value().Clone()))
	case OpRemove:
		if _, err := ir.Remove(work, op.Path); err != nil {
			return nil, notFound(err)
		}
		return work, nil
	case OpReplace:
		return pathErr(ir.Set(work, op.Path, op.value().Clone()))
	case OpMove:
		if op.From.IsStrictPrefixOf(op.Path) {
			return nil, fmt.Errorf("%w: %q is a descendant of %q", ErrInvalidMove, op.Path, op.From)
		}
		if op.From.Equal(op.Path) {
			if _, err := ir.Resolve(work, op.From); err != nil {
				return nil, notFound(err)
			}
			return work, nil
		}
		v, err := ir.Remove(work, op.From)
		if err != nil {
			return nil, notFound(err)
		}
		return pathErr(ir.Insert(work, op.Path, v))
	case OpCopy:
		v, err := ir.Resolve(work, op.From)
		if err != nil {
			return nil, notFound(err)
		}
		return pathErr(ir.Insert(work, op.Path, v.Clone()))
	case OpTest:
		v, err := ir.Resolve(work, op.Path)
		if err != nil {
			return nil, notFound(err)
		}
		if !ir.Equal(v, op.value()) {
			return nil, fmt.Errorf("%w: value at %q differs", ErrTestFailed, op.Path)
		}
		return work, nil
	}
	return nil, fmt.Errorf("%w: unknown op %q", ErrMalformedPatch, op.Op)
}

func pathErr(res *ir.Node, err error) (*ir.Node, error) {
	if err != nil {
		return nil, notFound(err)
	}
	return res, nil
}

// notFound marks addressing failures with ErrPathNotFound, keeping the
// underlying *ir.PathError reachable.
func notFound(err error) error {
	var pe *ir.PathError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %w", ErrPathNotFound, err)
	}
	return err
}

func (op Operation) value() *ir.Node {
	if op.Value == nil {
		return ir.Null()
	}
	return op.Value
}
