package ir

import (
	"encoding/binary"
	"hash/maphash"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node, consistent with Equal within a
// process: equal nodes have equal hashes regardless of object key order.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(n.Type))

	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		h.WriteString(numberText(n))
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		var b [8]byte
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		// fields are combined with a commutative sum so that key order
		// does not matter.
		var sum uint64
		for i, field := range n.Fields {
			var fh maphash.Hash
			fh.SetSeed(hashSeed)
			fh.WriteString(field.String)
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			fh.Write(b[:])
			sum += fh.Sum64()
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
	return h.Sum64()
}
