package mergepatch

import (
	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
)

// Diff returns the merge patch turning original into target. Equal
// objects give an empty object. Members of the result appear in target
// order followed by deletions in original order.
func Diff(original, target *ir.Node) *ir.Node {
	res := diff(original, target)
	if debug.Merge() {
		debug.Logf("merge diff %s -> %s: %s\n", encode.MustString(original), encode.MustString(target), encode.MustString(res))
	}
	return res
}

func diff(original, target *ir.Node) *ir.Node {
	if original.Type != ir.ObjectType || target.Type != ir.ObjectType {
		return target.Clone()
	}
	res := ir.EmptyObject()
	for i, field := range target.Fields {
		key := field.String
		tv := target.Values[i]
		ov := ir.Get(original, key)
		switch {
		case ov == nil:
			res.Put(key, tv.Clone())
		case ir.Equal(ov, tv):
		case ov.Type == ir.ObjectType && tv.Type == ir.ObjectType:
			res.Put(key, diff(ov, tv))
		default:
			res.Put(key, tv.Clone())
		}
	}
	for _, field := range original.Fields {
		if target.FieldIndex(field.String) == -1 {
			res.Put(field.String, ir.Null())
		}
	}
	return res
}
