package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	ErrCompile = errors.New("expression error")
	ErrEval    = errors.New("evaluation error")
)

// Program is a compiled expression. It is safe for concurrent use.
type Program struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Program, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCompile, src, err)
	}
	return &Program{src: src, prg: prg}, nil
}

func (p *Program) String() string {
	return p.src
}

// Eval runs the program and converts its result to a node.
func (p *Program) Eval(env *Env) (*ir.Node, error) {
	res, err := p.run(env)
	if err != nil {
		return nil, err
	}
	node, err := ir.FromAny(res)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrEval, p.src, err)
	}
	return node, nil
}

// EvalBool runs the program and interprets its result by truthiness.
func (p *Program) EvalBool(env *Env) (bool, error) {
	res, err := p.run(env)
	if err != nil {
		return false, err
	}
	if b, ok := res.(bool); ok {
		return b, nil
	}
	node, err := ir.FromAny(res)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrEval, p.src, err)
	}
	return ir.Truth(node), nil
}

func (p *Program) run(env *Env) (any, error) {
	res, err := expr.Run(p.prg, env.values())
	if debug.Eval() {
		debug.Logf("eval %q at %q: %v (err %v)\n", p.src, env.Path, res, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrEval, p.src, err)
	}
	return res, nil
}
