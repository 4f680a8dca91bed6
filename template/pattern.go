package template

import (
	"fmt"
	"path"
	"slices"
	"strconv"

	"github.com/signadot/jsont/eval"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
)

// Pattern selects the nodes a rule applies to. The zero Pattern matches
// every node.
type Pattern struct {
	path  *pointer.Glob
	types []ir.Type
	has   []string
	value *ir.Node
	key   *string
	when  *eval.Program
}

// CompilePattern compiles a pattern document.
func CompilePattern(node *ir.Node) (*Pattern, error) {
	res := &Pattern{}
	if node.Type == ir.StringType {
		node = ir.FromKeyVals([]ir.KeyVal{{Key: "path", Val: node}})
	}
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: expected an object or a string, got %s", ErrMalformedPattern, node.Type)
	}
	for i, field := range node.Fields {
		v := node.Values[i]
		var err error
		switch field.String {
		case "path":
			err = res.compilePath(v)
		case "type":
			err = res.compileType(v)
		case "has":
			err = res.compileHas(v)
		case "value":
			res.value = v
		case "key":
			err = res.compileKey(v)
		case "when":
			err = res.compileWhen(v)
		default:
			err = fmt.Errorf("unknown clause %q", field.String)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPattern, err)
		}
	}
	return res, nil
}

func (p *Pattern) compilePath(v *ir.Node) error {
	if v.Type != ir.StringType {
		return fmt.Errorf("path must be a string, got %s", v.Type)
	}
	g, err := pointer.ParseGlob(v.String)
	if err != nil {
		return fmt.Errorf("path %q: %w", v.String, err)
	}
	p.path = g
	return nil
}

func (p *Pattern) compileType(v *ir.Node) error {
	names := []*ir.Node{v}
	if v.Type == ir.ArrayType {
		names = v.Values
	}
	if len(names) == 0 {
		return fmt.Errorf("empty type list")
	}
	for _, name := range names {
		if name.Type != ir.StringType {
			return fmt.Errorf("type names are strings, got %s", name.Type)
		}
		t, ok := ir.ParseType(name.String)
		if !ok {
			return fmt.Errorf("unknown type %q", name.String)
		}
		p.types = append(p.types, t)
	}
	return nil
}

func (p *Pattern) compileHas(v *ir.Node) error {
	keys := []*ir.Node{v}
	if v.Type == ir.ArrayType {
		keys = v.Values
	}
	for _, k := range keys {
		if k.Type != ir.StringType {
			return fmt.Errorf("has takes strings, got %s", k.Type)
		}
		p.has = append(p.has, k.String)
	}
	return nil
}

func (p *Pattern) compileKey(v *ir.Node) error {
	if v.Type != ir.StringType {
		return fmt.Errorf("key must be a string, got %s", v.Type)
	}
	if _, err := path.Match(v.String, ""); err != nil {
		return fmt.Errorf("key %q: %w", v.String, err)
	}
	p.key = &v.String
	return nil
}

func (p *Pattern) compileWhen(v *ir.Node) error {
	if v.Type != ir.StringType {
		return fmt.Errorf("when must be a string, got %s", v.Type)
	}
	prg, err := eval.Compile(v.String)
	if err != nil {
		return err
	}
	p.when = prg
	return nil
}

// match reports whether the node of f satisfies every clause of p.
func (p *Pattern) match(x *exec, f *frame) (bool, error) {
	if p.path != nil && !p.path.Match(f.path) {
		return false, nil
	}
	if len(p.types) != 0 && !slices.Contains(p.types, f.node.Type) {
		return false, nil
	}
	for _, k := range p.has {
		if ir.Get(f.node, k) == nil {
			return false, nil
		}
	}
	if p.value != nil && !Match(f.node, p.value) {
		return false, nil
	}
	if p.key != nil {
		k, ok := f.keyText()
		if !ok {
			return false, nil
		}
		if m, _ := path.Match(*p.key, k); !m {
			return false, nil
		}
	}
	if p.when != nil {
		return p.when.EvalBool(x.env(f))
	}
	return true, nil
}

// keyText returns the key or index of the frame's node within its parent.
func (f *frame) keyText() (string, bool) {
	switch {
	case f.index >= 0:
		return strconv.Itoa(f.index), true
	case !f.path.IsRoot():
		return f.key, true
	}
	return "", false
}
