package eval

import (
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
)

// Scope holds the values shared by every evaluation over one document:
// the document root and the variables.
type Scope struct {
	root any
	vars map[string]any
}

// NewScope converts root and vars once for use by many Envs. vars may be
// nil; otherwise it must be an object.
func NewScope(root, vars *ir.Node) *Scope {
	s := &Scope{vars: map[string]any{}}
	if root != nil {
		s.root = ir.ToAny(root)
	}
	if vars != nil && vars.Type == ir.ObjectType {
		s.vars = ir.ToAny(vars).(map[string]any)
	}
	return s
}

// Env is the context an expression is evaluated in.
type Env struct {
	Scope   *Scope
	Current *ir.Node
	// Key is the current node's key in its parent object, "" otherwise.
	Key string
	// Index is the current node's index in its parent array, -1
	// otherwise.
	Index int
	Path  pointer.Pointer
}

// envShape declares the names visible to expressions. The current node
// and the root are dynamic: their JSON type is only known at run time.
type envShape struct {
	Current any            `expr:"_"`
	Root    any            `expr:"root"`
	Key     string         `expr:"key"`
	Index   int            `expr:"index"`
	Path    string         `expr:"path"`
	Vars    map[string]any `expr:"vars"`
}

func (e *Env) values() envShape {
	scope := e.Scope
	if scope == nil {
		scope = NewScope(nil, nil)
	}
	var cur any
	if e.Current != nil {
		cur = ir.ToAny(e.Current)
	}
	return envShape{
		Current: cur,
		Root:    scope.root,
		Key:     e.Key,
		Index:   e.Index,
		Path:    e.Path.String(),
		Vars:    scope.vars,
	}
}
