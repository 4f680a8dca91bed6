package template

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/signadot/jsont/eval"
	"github.com/signadot/jsont/ir"
)

const DefaultMaxDepth = 512

// Rule is a compiled template rule.
type Rule struct {
	Name     string
	Priority int
	Pattern  *Pattern
	Body     Instr
}

var identityRule = &Rule{
	Name:    "identity",
	Pattern: &Pattern{},
	Body:    &childrenInstr{},
}

// Template is a compiled template. It is safe for concurrent use.
type Template struct {
	Rules    []*Rule
	Identity bool
	MaxDepth int
	Vars     *ir.Node

	// rules by decreasing priority, declaration order among equals
	order []*Rule
}

type Option func(*Template)

// WithVars sets variables, overriding those of the template document.
func WithVars(vars map[string]*ir.Node) Option {
	return func(t *Template) {
		for k, v := range vars {
			t.Vars.Put(k, v)
		}
	}
}

func WithMaxDepth(n int) Option {
	return func(t *Template) { t.MaxDepth = n }
}

// Compile compiles a template document.
func Compile(doc *ir.Node, opts ...Option) (*Template, error) {
	if doc.Type != ir.ObjectType {
		return nil, malformed("template must be an object, got %s", doc.Type)
	}
	t := &Template{
		Identity: true,
		MaxDepth: DefaultMaxDepth,
		Vars:     ir.EmptyObject(),
	}
	for i, field := range doc.Fields {
		v := doc.Values[i]
		switch field.String {
		case "identity":
			if v.Type != ir.BoolType {
				return nil, malformed("identity must be a bool, got %s", v.Type)
			}
			t.Identity = v.Bool
		case "maxDepth":
			n, err := intOf(v)
			if err != nil || n < 1 {
				return nil, malformed("maxDepth must be a positive integer")
			}
			t.MaxDepth = n
		case "vars":
			if v.Type != ir.ObjectType {
				return nil, malformed("vars must be an object, got %s", v.Type)
			}
			t.Vars = v.Clone()
		case "rules":
			if v.Type != ir.ArrayType {
				return nil, malformed("rules must be an array, got %s", v.Type)
			}
			for j, rv := range v.Values {
				r, err := compileRule(j, rv)
				if err != nil {
					return nil, err
				}
				t.Rules = append(t.Rules, r)
			}
		default:
			return nil, malformed("unknown key %q", field.String)
		}
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.MaxDepth < 1 {
		return nil, malformed("maxDepth must be positive")
	}
	t.order = make([]*Rule, len(t.Rules))
	copy(t.order, t.Rules)
	slices.SortStableFunc(t.order, func(a, b *Rule) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return t, nil
}

func compileRule(i int, node *ir.Node) (*Rule, error) {
	if node.Type != ir.ObjectType {
		return nil, malformed("rule %d: expected an object, got %s", i, node.Type)
	}
	r := &Rule{Name: fmt.Sprintf("#%d", i), Pattern: &Pattern{}}
	var output *ir.Node
	for j, field := range node.Fields {
		v := node.Values[j]
		switch field.String {
		case "name":
			if v.Type != ir.StringType {
				return nil, malformed("rule %d: name must be a string", i)
			}
			r.Name = v.String
		case "priority":
			n, err := intOf(v)
			if err != nil {
				return nil, malformed("rule %d: priority: %w", i, err)
			}
			r.Priority = n
		case "match":
			p, err := CompilePattern(v)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			r.Pattern = p
		case "output":
			output = v
		default:
			return nil, malformed("rule %d: unknown key %q", i, field.String)
		}
	}
	if output == nil {
		return nil, malformed("rule %s: missing output", r.Name)
	}
	body, err := CompileOutput(output)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.Name, err)
	}
	r.Body = body
	return r, nil
}

func intOf(v *ir.Node) (int, error) {
	if v.Type != ir.NumberType || v.Int64 == nil {
		return 0, fmt.Errorf("expected an integer, got %s", v.Type)
	}
	return int(*v.Int64), nil
}

func (t *Template) lookup(x *exec, f *frame) (*Rule, error) {
	for _, r := range t.order {
		ok, err := r.Pattern.match(x, f)
		if err != nil {
			return nil, &Error{Rule: r.Name, Pointer: f.path, Err: err}
		}
		if ok {
			return r, nil
		}
	}
	return nil, nil
}

// Transform applies the template to input, returning a new document.
// input is not modified.
func (t *Template) Transform(input *ir.Node) (*ir.Node, error) {
	x := &exec{
		t:     t,
		scope: eval.NewScope(input, t.Vars),
	}
	res, err := x.apply(rootFrame(input))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return ir.Null(), nil
	}
	return res, nil
}
