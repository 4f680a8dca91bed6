package template

import (
	"errors"
	"fmt"

	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/eval"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
)

// frame is a node of the input together with where it sits.
type frame struct {
	node  *ir.Node
	path  pointer.Pointer
	key   string
	index int
}

func rootFrame(node *ir.Node) *frame {
	return &frame{node: node, index: -1}
}

// sel resolves a relative selector, returning nil if it does not
// resolve.
func (f *frame) sel(p pointer.Pointer) *frame {
	if p.IsRoot() {
		return f
	}
	parent, err := ir.Resolve(f.node, p.Parent())
	if err != nil {
		return nil
	}
	node, err := ir.Resolve(parent, p[len(p)-1:])
	if err != nil {
		return nil
	}
	res := &frame{node: node, path: f.path.Concat(p), index: -1}
	if parent.Type == ir.ArrayType {
		res.index, _ = pointer.Index(p.Last())
	} else {
		res.key = p.Last()
	}
	return res
}

func (f *frame) children() []*frame {
	res := make([]*frame, len(f.node.Values))
	for i, v := range f.node.Values {
		switch f.node.Type {
		case ir.ObjectType:
			k := f.node.Fields[i].String
			res[i] = &frame{node: v, path: f.path.Append(k), key: k, index: -1}
		case ir.ArrayType:
			res[i] = &frame{node: v, path: f.path.AppendIndex(i), index: i}
		}
	}
	return res
}

type activation struct {
	rule *Rule
	path pointer.Pointer
}

// exec is the state of one Transform call.
type exec struct {
	t     *Template
	scope *eval.Scope
	stack []activation
}

func (x *exec) env(f *frame) *eval.Env {
	return &eval.Env{
		Scope:   x.scope,
		Current: f.node,
		Key:     f.key,
		Index:   f.index,
		Path:    f.path,
	}
}

// apply dispatches f to its rule and runs it.
func (x *exec) apply(f *frame) (*ir.Node, error) {
	if len(x.stack) >= x.t.MaxDepth {
		return nil, &Error{Pointer: f.path, Err: fmt.Errorf("%w: depth %d", ErrInfiniteRecursionSuspected, len(x.stack))}
	}
	r, err := x.t.lookup(x, f)
	if err != nil {
		return nil, err
	}
	if r == nil {
		if !x.t.Identity {
			return nil, &Error{Pointer: f.path, Err: ErrNoMatchingRule}
		}
		r = identityRule
	}
	for _, a := range x.stack {
		if a.rule == r && a.path.Equal(f.path) {
			return nil, &Error{Rule: r.Name, Pointer: f.path, Err: ErrCircularSelection}
		}
	}
	if debug.Template() {
		debug.Logf("%*srule %s at %q\n", len(x.stack), "", r.Name, f.path)
	}
	x.stack = append(x.stack, activation{rule: r, path: f.path})
	res, err := r.Body.Exec(x, f)
	x.stack = x.stack[:len(x.stack)-1]
	if err != nil {
		var te *Error
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, &Error{Rule: r.Name, Pointer: f.path, Err: err}
	}
	return res, nil
}
