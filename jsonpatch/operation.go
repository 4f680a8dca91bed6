package jsonpatch

import (
	"fmt"

	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
	"github.com/signadot/jsont/parse"
)

type OpType string

const (
	OpAdd     OpType = "add"
	OpRemove  OpType = "remove"
	OpReplace OpType = "replace"
	OpMove    OpType = "move"
	OpCopy    OpType = "copy"
	OpTest    OpType = "test"
)

func (t OpType) valid() bool {
	switch t {
	case OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest:
		return true
	}
	return false
}

// hasFrom reports whether operations of type t carry a "from" member.
func (t OpType) hasFrom() bool {
	return t == OpMove || t == OpCopy
}

// hasValue reports whether operations of type t carry a "value" member.
func (t OpType) hasValue() bool {
	return t == OpAdd || t == OpReplace || t == OpTest
}

type Operation struct {
	Op    OpType
	Path  pointer.Pointer
	From  pointer.Pointer
	Value *ir.Node
}

func Add(p pointer.Pointer, v *ir.Node) Operation {
	return Operation{Op: OpAdd, Path: p, Value: v}
}

func Remove(p pointer.Pointer) Operation {
	return Operation{Op: OpRemove, Path: p}
}

func Replace(p pointer.Pointer, v *ir.Node) Operation {
	return Operation{Op: OpReplace, Path: p, Value: v}
}

func Move(from, p pointer.Pointer) Operation {
	return Operation{Op: OpMove, From: from, Path: p}
}

func Copy(from, p pointer.Pointer) Operation {
	return Operation{Op: OpCopy, From: from, Path: p}
}

func Test(p pointer.Pointer, v *ir.Node) Operation {
	return Operation{Op: OpTest, Path: p, Value: v}
}

// Node renders the operation as a patch document member.
func (op Operation) Node() *ir.Node {
	kvs := []ir.KeyVal{
		{Key: "op", Val: ir.FromString(string(op.Op))},
		{Key: "path", Val: ir.FromString(op.Path.String())},
	}
	if op.Op.hasFrom() {
		kvs = append(kvs, ir.KeyVal{Key: "from", Val: ir.FromString(op.From.String())})
	}
	if op.Op.hasValue() {
		v := op.Value
		if v == nil {
			v = ir.Null()
		}
		kvs = append(kvs, ir.KeyVal{Key: "value", Val: v})
	}
	return ir.FromKeyVals(kvs)
}

func (op Operation) String() string {
	return encode.MustString(op.Node())
}

// Patch is an ordered sequence of operations.
type Patch []Operation

// Node renders the patch as a JSON Patch document.
func (p Patch) Node() *ir.Node {
	vals := make([]*ir.Node, len(p))
	for i := range p {
		vals[i] = p[i].Node()
	}
	return ir.FromSlice(vals)
}

func (p Patch) String() string {
	return encode.MustString(p.Node())
}

// Parse parses and decodes a JSON Patch document.
func Parse(d []byte, opts ...parse.ParseOption) (Patch, error) {
	node, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return Decode(node)
}

// Decode validates a JSON Patch document. Members of operations other
// than op, path, from and value are ignored.
func Decode(node *ir.Node) (Patch, error) {
	if node.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: expected an array of operations, got %s", ErrMalformedPatch, node.Type)
	}
	res := make(Patch, len(node.Values))
	for i, v := range node.Values {
		op, err := decodeOp(v)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		res[i] = op
	}
	return res, nil
}

func decodeOp(node *ir.Node) (Operation, error) {
	res := Operation{}
	if node.Type != ir.ObjectType {
		return res, fmt.Errorf("%w: expected an object, got %s", ErrMalformedPatch, node.Type)
	}
	opNode := ir.Get(node, "op")
	if opNode == nil || opNode.Type != ir.StringType {
		return res, fmt.Errorf("%w: missing or non string \"op\"", ErrMalformedPatch)
	}
	res.Op = OpType(opNode.String)
	if !res.Op.valid() {
		return res, fmt.Errorf("%w: unknown op %q", ErrMalformedPatch, opNode.String)
	}
	p, err := decodePointer(node, "path")
	if err != nil {
		return res, err
	}
	res.Path = p
	if res.Op.hasFrom() {
		from, err := decodePointer(node, "from")
		if err != nil {
			return res, err
		}
		res.From = from
	}
	if res.Op.hasValue() {
		res.Value = ir.Get(node, "value")
		if res.Value == nil {
			return res, fmt.Errorf("%w: %s without \"value\"", ErrMalformedPatch, res.Op)
		}
	}
	return res, nil
}

func decodePointer(node *ir.Node, field string) (pointer.Pointer, error) {
	v := ir.Get(node, field)
	if v == nil || v.Type != ir.StringType {
		return nil, fmt.Errorf("%w: missing or non string %q", ErrMalformedPatch, field)
	}
	p, err := pointer.Parse(v.String)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedPatch, field, err)
	}
	return p, nil
}
