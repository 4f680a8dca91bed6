package jsont

import (
	"fmt"

	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/jsonpatch"
	"github.com/signadot/jsont/mergepatch"
	"github.com/signadot/jsont/template"
)

// Run performs mode on its two operands.
func Run(mode Mode, op1, op2 *ir.Node, opts ...RunOption) (*ir.Node, error) {
	o := &runOpts{}
	for _, opt := range opts {
		opt(o)
	}
	var (
		res *ir.Node
		err error
	)
	switch mode {
	case ModeDiff:
		res = mergepatch.Diff(op1, op2)
	case ModeMerge:
		res = mergepatch.Apply(op2, op1)
	case ModePatch:
		res = jsonpatch.Diff(op1, op2, o.diffOpts...).Node()
	case ModeApply:
		var p jsonpatch.Patch
		p, err = jsonpatch.Decode(op1)
		if err != nil {
			return nil, err
		}
		res, err = jsonpatch.Apply(op2, p)
	case ModeTransform:
		var t *template.Template
		t, err = template.Compile(op1, o.templateOpts...)
		if err != nil {
			return nil, err
		}
		res, err = t.Transform(op2)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadMode, int(mode))
	}
	if err != nil {
		return nil, err
	}
	if o.check && mode.IsDiff() {
		if err := check(mode, op1, op2, res); err != nil {
			return nil, err
		}
		if debug.Patch() {
			debug.Logf("%s check passed\n", mode)
		}
	}
	return res, nil
}
