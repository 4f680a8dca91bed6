// Package ir provides the in-memory representation of JSON documents.
//
// # Overview
//
// All documents handled by jsont, whether parsed from text, produced by a
// diff or built by a template, are trees of *Node. The representation is a
// recursive tagged union: the Type field says which of the other fields
// carry the value.
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Number (the literal text), plus Int64 or Float64
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields and Values, Fields[i] being the key of Values[i]
//
// # Creating Nodes
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	dec := ir.FromNumber("3.14159265358979323846")
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "b", Val: ir.FromInt(1)},
//	    {Key: "a", Val: ir.FromInt(2)},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// # Invariants
//
// Object keys are unique and keep their insertion order, which is the
// order used when encoding. Array order is significant. Number literals
// are kept verbatim so that values round trip without loss of precision.
//
// # Equality
//
// Equal is structural: object key order is not significant and numbers
// compare by decimal value, so 1, 1.0 and 1e0 are equal. Compare extends
// Equal to a total order and Hash is consistent with it.
//
// # Addressing
//
// Nodes are addressed with JSON Pointers (package ir/pointer):
//
//	v, err := ir.Resolve(doc, pointer.MustParse("/items/0"))
//
// Resolve fails with ErrNotFound or ErrIndexOutOfRange wrapped in a
// *PathError. Insert, Set and Remove modify a tree in place and are meant
// for private working copies only.
//
// # Immutability
//
// Nodes carry no parent pointers, so a subtree may be shared between
// trees. Operations in jsont never modify their inputs; they build new
// trees or work on a Clone.
package ir
