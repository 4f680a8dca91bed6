package template

import (
	"fmt"

	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/eval"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
)

const (
	literalName  name = "$literal"
	copyName     name = "$copy"
	applyName    name = "$apply"
	childrenName name = "$children"
	valueName    name = "$value"
	eachName     name = "$each"
	ifName       name = "$if"
	flattenName  name = "$flatten"
	mergeName    name = "$merge"
)

type symbol struct {
	name
	instance func(body *ir.Node) (Instr, error)
}

func (s *symbol) Instance(body *ir.Node) (Instr, error) {
	return s.instance(body)
}

var (
	literalSym  = &symbol{name: literalName, instance: literalInstance}
	copySym     = &symbol{name: copyName, instance: copyInstance}
	applySym    = &symbol{name: applyName, instance: applyInstance}
	childrenSym = &symbol{name: childrenName, instance: childrenInstance}
	valueSym    = &symbol{name: valueName, instance: valueInstance}
	eachSym     = &symbol{name: eachName, instance: eachInstance}
	ifSym       = &symbol{name: ifName, instance: ifInstance}
	flattenSym  = &symbol{name: flattenName, instance: flattenInstance}
	mergeSym    = &symbol{name: mergeName, instance: mergeInstance}
)

func Literal() Symbol  { return literalSym }
func Copy() Symbol     { return copySym }
func Apply() Symbol    { return applySym }
func Children() Symbol { return childrenSym }
func Value() Symbol    { return valueSym }
func Each() Symbol     { return eachSym }
func If() Symbol       { return ifSym }
func Flatten() Symbol  { return flattenSym }
func Merge() Symbol    { return mergeSym }

func literalInstance(body *ir.Node) (Instr, error) {
	if err := checkKeys(body, nil); err != nil {
		return nil, err
	}
	return &literalInstr{v: body.Values[0]}, nil
}

// selectorInstance compiles the instructions which take only a selector.
func selectorInstance(body *ir.Node) (pointer.Pointer, error) {
	if err := checkKeys(body, nil); err != nil {
		return nil, err
	}
	return compileSelector(body.Fields[0].String, body.Values[0])
}

type copyInstr struct {
	sel pointer.Pointer
}

func copyInstance(body *ir.Node) (Instr, error) {
	sel, err := selectorInstance(body)
	if err != nil {
		return nil, err
	}
	return &copyInstr{sel: sel}, nil
}

func (c *copyInstr) Exec(_ *exec, f *frame) (*ir.Node, error) {
	g := f.sel(c.sel)
	if g == nil {
		return ir.Null(), nil
	}
	return g.node.Clone(), nil
}

type applyInstr struct {
	sel pointer.Pointer
}

func applyInstance(body *ir.Node) (Instr, error) {
	sel, err := selectorInstance(body)
	if err != nil {
		return nil, err
	}
	return &applyInstr{sel: sel}, nil
}

func (a *applyInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	g := f.sel(a.sel)
	if g == nil {
		return ir.Null(), nil
	}
	res, err := x.apply(g)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return ir.Null(), nil
	}
	return res, nil
}

type childrenInstr struct {
	sel pointer.Pointer
}

func childrenInstance(body *ir.Node) (Instr, error) {
	sel, err := selectorInstance(body)
	if err != nil {
		return nil, err
	}
	return &childrenInstr{sel: sel}, nil
}

// Exec transforms the children of the selected node, keeping its shape.
// Children transformed to nothing are left out.
func (c *childrenInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	g := f.sel(c.sel)
	if g == nil {
		return nil, nil
	}
	switch g.node.Type {
	case ir.ObjectType:
		res := ir.EmptyObject()
		for _, child := range g.children() {
			v, err := x.apply(child)
			if err != nil {
				return nil, err
			}
			if v != nil {
				res.Put(child.key, v)
			}
		}
		return res, nil
	case ir.ArrayType:
		res := ir.FromSlice(nil)
		for _, child := range g.children() {
			v, err := x.apply(child)
			if err != nil {
				return nil, err
			}
			if v != nil {
				res.Values = append(res.Values, v)
			}
		}
		return res, nil
	default:
		return g.node.Clone(), nil
	}
}

type valueInstr struct {
	prg *eval.Program
}

func valueInstance(body *ir.Node) (Instr, error) {
	if err := checkKeys(body, nil); err != nil {
		return nil, err
	}
	prg, err := compileExpr(string(valueName), body.Values[0])
	if err != nil {
		return nil, err
	}
	return &valueInstr{prg: prg}, nil
}

func (v *valueInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	return v.prg.Eval(x.env(f))
}

type eachInstr struct {
	sel   pointer.Pointer
	where *eval.Program
	key   *eval.Program
	do    Instr
}

func eachInstance(body *ir.Node) (Instr, error) {
	if err := checkKeys(body, []string{"$do"}, "$where", "$key"); err != nil {
		return nil, err
	}
	res := &eachInstr{}
	sel, err := compileSelector(string(eachName), body.Values[0])
	if err != nil {
		return nil, err
	}
	res.sel = sel
	if w := ir.Get(body, "$where"); w != nil {
		if res.where, err = compileExpr("$where", w); err != nil {
			return nil, err
		}
	}
	if k := ir.Get(body, "$key"); k != nil {
		if res.key, err = compileExpr("$key", k); err != nil {
			return nil, err
		}
	}
	if res.do, err = CompileOutput(ir.Get(body, "$do")); err != nil {
		return nil, err
	}
	return res, nil
}

// Exec runs the body once per child of the selected node, giving an
// array, or an object when a key expression names the members.
func (e *eachInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	g := f.sel(e.sel)
	if g == nil {
		return nil, nil
	}
	res := ir.FromSlice(nil)
	if e.key != nil {
		res = ir.EmptyObject()
	}
	for _, child := range g.children() {
		if e.where != nil {
			ok, err := e.where.EvalBool(x.env(child))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		v, err := e.do.Exec(x, child)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		if e.key == nil {
			res.Values = append(res.Values, v)
			continue
		}
		k, err := e.key.Eval(x.env(child))
		if err != nil {
			return nil, err
		}
		ks, err := keyString(k)
		if err != nil {
			return nil, err
		}
		res.Put(ks, v)
	}
	return res, nil
}

func keyString(k *ir.Node) (string, error) {
	switch k.Type {
	case ir.StringType:
		return k.String, nil
	case ir.NumberType, ir.BoolType:
		return encode.MustString(k), nil
	}
	return "", fmt.Errorf("%w: key expression gave %s", ErrEval, k.Type)
}

type ifInstr struct {
	cond      *eval.Program
	then, els Instr
}

func ifInstance(body *ir.Node) (Instr, error) {
	if err := checkKeys(body, []string{"$then"}, "$else"); err != nil {
		return nil, err
	}
	res := &ifInstr{}
	var err error
	if res.cond, err = compileExpr(string(ifName), body.Values[0]); err != nil {
		return nil, err
	}
	if res.then, err = CompileOutput(ir.Get(body, "$then")); err != nil {
		return nil, err
	}
	if e := ir.Get(body, "$else"); e != nil {
		if res.els, err = CompileOutput(e); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (i *ifInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	ok, err := i.cond.EvalBool(x.env(f))
	if err != nil {
		return nil, err
	}
	if ok {
		return i.then.Exec(x, f)
	}
	if i.els == nil {
		return nil, nil
	}
	return i.els.Exec(x, f)
}

type flattenInstr struct {
	body Instr
}

func flattenInstance(body *ir.Node) (Instr, error) {
	if err := checkKeys(body, nil); err != nil {
		return nil, err
	}
	in, err := CompileOutput(body.Values[0])
	if err != nil {
		return nil, err
	}
	return &flattenInstr{body: in}, nil
}

func (fl *flattenInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	v, err := fl.body.Exec(x, f)
	if err != nil || v == nil || v.Type != ir.ArrayType {
		return v, err
	}
	res := ir.FromSlice(nil)
	for _, elt := range v.Values {
		if elt.Type == ir.ArrayType {
			res.Values = append(res.Values, elt.Values...)
			continue
		}
		res.Values = append(res.Values, elt)
	}
	return res, nil
}

type mergeInstr struct {
	body Instr
}

func mergeInstance(body *ir.Node) (Instr, error) {
	if err := checkKeys(body, nil); err != nil {
		return nil, err
	}
	in, err := CompileOutput(body.Values[0])
	if err != nil {
		return nil, err
	}
	return &mergeInstr{body: in}, nil
}

// Exec deep merges the objects of an array in order. Arrays under the
// same key are concatenated, objects merged and the first scalar kept.
// Elements which are not objects are ignored.
func (m *mergeInstr) Exec(x *exec, f *frame) (*ir.Node, error) {
	v, err := m.body.Exec(x, f)
	if err != nil || v == nil || v.Type != ir.ArrayType {
		return v, err
	}
	res := ir.EmptyObject()
	for _, elt := range v.Values {
		if elt.Type == ir.ObjectType {
			deepMerge(res, elt)
		}
	}
	return res, nil
}

func deepMerge(dst, src *ir.Node) {
	for i, field := range src.Fields {
		k := field.String
		v := src.Values[i]
		cur := ir.Get(dst, k)
		switch v.Type {
		case ir.ArrayType:
			if cur == nil || cur.Type != ir.ArrayType {
				cur = ir.FromSlice(nil)
				dst.Put(k, cur)
			}
			for _, elt := range v.Values {
				cur.Values = append(cur.Values, elt.Clone())
			}
		case ir.ObjectType:
			if cur == nil || cur.Type != ir.ObjectType {
				cur = ir.EmptyObject()
				dst.Put(k, cur)
			}
			deepMerge(cur, v)
		default:
			if cur == nil {
				dst.Put(k, v.Clone())
			}
		}
	}
}
