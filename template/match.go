package template

import (
	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
)

// Match reports whether doc contains match: objects match when every
// member of match matches the same member of doc, arrays when they have
// the same length and match pairwise, null matches anything and other
// scalars must be equal.
func Match(doc, match *ir.Node) bool {
	if debug.Match() {
		debug.Logf("match %s against %s\n", encode.MustString(doc), encode.MustString(match))
	}
	if match.Type == ir.NullType {
		return true
	}
	if doc.Type != match.Type {
		return false
	}
	switch match.Type {
	case ir.ObjectType:
		return matchObj(doc, match)
	case ir.ArrayType:
		return matchArray(doc, match)
	default:
		return ir.Equal(doc, match)
	}
}

func matchObj(doc, match *ir.Node) bool {
	for i, field := range match.Fields {
		dv := ir.Get(doc, field.String)
		if dv == nil {
			return false
		}
		if !Match(dv, match.Values[i]) {
			return false
		}
	}
	return true
}

func matchArray(doc, match *ir.Node) bool {
	if len(doc.Values) != len(match.Values) {
		return false
	}
	for i := range doc.Values {
		if !Match(doc.Values[i], match.Values[i]) {
			return false
		}
	}
	return true
}
