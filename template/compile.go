package template

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/jsont/eval"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
)

// CompileOutput compiles a rule output document.
func CompileOutput(body *ir.Node) (Instr, error) {
	switch body.Type {
	case ir.ObjectType:
		if len(body.Fields) != 0 && isKeyword(body.Fields[0].String) {
			kw := body.Fields[0].String
			sym := Lookup(kw)
			if sym == nil {
				return nil, malformed("unknown instruction %q", kw)
			}
			return sym.Instance(body)
		}
		res := &objectInstr{}
		for i, field := range body.Fields {
			if isKeyword(field.String) {
				return nil, malformed("instruction %q must lead its object", field.String)
			}
			v, err := CompileOutput(body.Values[i])
			if err != nil {
				return nil, err
			}
			res.keys = append(res.keys, field.String)
			res.vals = append(res.vals, v)
		}
		return res, nil
	case ir.ArrayType:
		res := &arrayInstr{elts: make([]Instr, len(body.Values))}
		for i, elt := range body.Values {
			v, err := CompileOutput(elt)
			if err != nil {
				return nil, err
			}
			res.elts[i] = v
		}
		return res, nil
	default:
		return &literalInstr{v: body}, nil
	}
}

func isKeyword(s string) bool {
	return strings.HasPrefix(s, "$")
}

// checkKeys verifies that an instruction object only has the given
// keywords besides its leading one, and that the required ones are
// there.
func checkKeys(body *ir.Node, required []string, optional ...string) error {
	for _, field := range body.Fields[1:] {
		k := field.String
		if !slices.Contains(required, k) && !slices.Contains(optional, k) {
			return malformed("%s: unexpected key %q", body.Fields[0].String, k)
		}
	}
	for _, k := range required {
		if ir.Get(body, k) == nil {
			return malformed("%s: missing %q", body.Fields[0].String, k)
		}
	}
	return nil
}

func compileSelector(kw string, v *ir.Node) (pointer.Pointer, error) {
	if v.Type != ir.StringType {
		return nil, malformed("%s: selector must be a string, got %s", kw, v.Type)
	}
	p, err := pointer.Parse(v.String)
	if err != nil {
		return nil, malformed("%s: %w", kw, err)
	}
	return p, nil
}

func compileExpr(kw string, v *ir.Node) (*eval.Program, error) {
	if v.Type != ir.StringType {
		return nil, malformed("%s: expression must be a string, got %s", kw, v.Type)
	}
	prg, err := eval.Compile(v.String)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedTemplate, kw, err)
	}
	return prg, nil
}

type literalInstr struct {
	v *ir.Node
}

func (l *literalInstr) Exec(_ *exec, _ *frame) (*ir.Node, error) {
	return l.v.Clone(), nil
}

type objectInstr struct {
	keys []string
	vals []Instr
}

func (o *objectInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	res := ir.EmptyObject()
	for i, k := range o.keys {
		v, err := o.vals[i].Exec(x, f)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		res.Put(k, v)
	}
	return res, nil
}

type arrayInstr struct {
	elts []Instr
}

func (a *arrayInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	res := ir.FromSlice(nil)
	for _, elt := range a.elts {
		v, err := elt.Exec(x, f)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		res.Values = append(res.Values, v)
	}
	return res, nil
}
