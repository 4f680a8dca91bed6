package mergepatch

import (
	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
)

// Apply merges patch into original. The result shares no nodes with
// either argument. Members of original keep their position; new members
// are appended in patch order.
func Apply(original, patch *ir.Node) *ir.Node {
	res := apply(original, patch)
	if debug.Merge() {
		debug.Logf("merge apply %s to %s: %s\n", encode.MustString(patch), encode.MustString(original), encode.MustString(res))
	}
	return res
}

func apply(original, patch *ir.Node) *ir.Node {
	if patch.Type != ir.ObjectType {
		return patch.Clone()
	}
	var res *ir.Node
	if original != nil && original.Type == ir.ObjectType {
		res = original.Clone()
	} else {
		res = ir.EmptyObject()
	}
	for i, field := range patch.Fields {
		key := field.String
		pv := patch.Values[i]
		if pv.Type == ir.NullType {
			res.Delete(key)
			continue
		}
		res.Put(key, apply(ir.Get(res, key), pv))
	}
	return res
}
