package ir

import (
	"slices"

	"github.com/signadot/jsont/ir/pointer"
)

// Resolve returns the node at p within root. The result is shared with
// root, not copied.
func Resolve(root *Node, p pointer.Pointer) (*Node, error) {
	res := root
	for i, tok := range p {
		at := p[:i+1]
		switch res.Type {
		case ObjectType:
			next := Get(res, tok)
			if next == nil {
				return nil, pathErrorf(at, ErrNotFound, "no field %q", tok)
			}
			res = next
		case ArrayType:
			idx, err := arrayIndex(at, tok, len(res.Values), false)
			if err != nil {
				return nil, err
			}
			res = res.Values[idx]
		default:
			return nil, pathErrorf(at, ErrNotFound, "cannot address %q in %s", tok, res.Type)
		}
	}
	return res, nil
}

// Has reports whether p resolves within root.
func Has(root *Node, p pointer.Pointer) bool {
	_, err := Resolve(root, p)
	return err == nil
}

// arrayIndex checks tok against an array of length n. When insert is
// true the append marker and the index n are allowed.
func arrayIndex(at pointer.Pointer, tok string, n int, insert bool) (int, error) {
	if tok == pointer.AppendToken {
		if insert {
			return n, nil
		}
		return 0, pathErrorf(at, ErrIndexOutOfRange, "append marker outside of add")
	}
	idx, ok := pointer.Index(tok)
	if !ok {
		return 0, pathErrorf(at, ErrBadIndex, "%q", tok)
	}
	lim := n
	if insert {
		lim++
	}
	if idx >= lim {
		return 0, pathErrorf(at, ErrIndexOutOfRange, "index %d (len %d)", idx, n)
	}
	return idx, nil
}

// Insert adds v at p within root, which is modified in place. Object
// fields are created or overwritten; array elements are inserted, shifting
// later elements. Insert at the root pointer returns v.
//
// Insert must only be used on trees which are not shared.
func Insert(root *Node, p pointer.Pointer, v *Node) (*Node, error) {
	if p.IsRoot() {
		return v, nil
	}
	parent, err := Resolve(root, p.Parent())
	if err != nil {
		return nil, err
	}
	tok := p.Last()
	switch parent.Type {
	case ObjectType:
		parent.Put(tok, v)
	case ArrayType:
		idx, err := arrayIndex(p, tok, len(parent.Values), true)
		if err != nil {
			return nil, err
		}
		parent.Values = slices.Insert(parent.Values, idx, v)
	default:
		return nil, pathErrorf(p, ErrNotFound, "cannot add %q in %s", tok, parent.Type)
	}
	return root, nil
}

// Set replaces the existing node at p within root, which is modified in
// place. Set at the root pointer returns v.
//
// Set must only be used on trees which are not shared.
func Set(root *Node, p pointer.Pointer, v *Node) (*Node, error) {
	if p.IsRoot() {
		return v, nil
	}
	parent, err := Resolve(root, p.Parent())
	if err != nil {
		return nil, err
	}
	tok := p.Last()
	switch parent.Type {
	case ObjectType:
		i := parent.FieldIndex(tok)
		if i == -1 {
			return nil, pathErrorf(p, ErrNotFound, "no field %q", tok)
		}
		parent.Values[i] = v
	case ArrayType:
		idx, err := arrayIndex(p, tok, len(parent.Values), false)
		if err != nil {
			return nil, err
		}
		parent.Values[idx] = v
	default:
		return nil, pathErrorf(p, ErrNotFound, "cannot set %q in %s", tok, parent.Type)
	}
	return root, nil
}

// Remove deletes the node at p from root, which is modified in place, and
// returns the removed node. The root itself cannot be removed.
//
// Remove must only be used on trees which are not shared.
func Remove(root *Node, p pointer.Pointer) (*Node, error) {
	if p.IsRoot() {
		return nil, pathErrorf(p, ErrNotFound, "cannot remove the document root")
	}
	parent, err := Resolve(root, p.Parent())
	if err != nil {
		return nil, err
	}
	tok := p.Last()
	switch parent.Type {
	case ObjectType:
		i := parent.FieldIndex(tok)
		if i == -1 {
			return nil, pathErrorf(p, ErrNotFound, "no field %q", tok)
		}
		removed := parent.Values[i]
		parent.Delete(tok)
		return removed, nil
	case ArrayType:
		idx, err := arrayIndex(p, tok, len(parent.Values), false)
		if err != nil {
			return nil, err
		}
		removed := parent.Values[idx]
		parent.Values = slices.Delete(parent.Values, idx, idx+1)
		return removed, nil
	default:
		return nil, pathErrorf(p, ErrNotFound, "cannot remove %q in %s", tok, parent.Type)
	}
}

// Walk calls f for every node in root with its pointer, parents before
// children, objects in field order. Returning false from f skips the
// node's children.
func Walk(root *Node, f func(p pointer.Pointer, y *Node) bool) {
	walk(root, nil, f)
}

func walk(y *Node, p pointer.Pointer, f func(pointer.Pointer, *Node) bool) {
	if !f(p, y) {
		return
	}
	switch y.Type {
	case ObjectType:
		for i, field := range y.Fields {
			walk(y.Values[i], p.Append(field.String), f)
		}
	case ArrayType:
		for i, v := range y.Values {
			walk(v, p.AppendIndex(i), f)
		}
	}
}
