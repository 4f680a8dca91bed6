// Package pointer provides JSON Pointer (RFC 6901) parsing and formatting.
//
// A Pointer is a sequence of reference tokens. The empty pointer refers to
// the whole document.
//
// # Usage
//
//	p, err := pointer.Parse("/items/0/name")
//
//	// Build pointers while walking a tree
//	child := p.Parent().AppendIndex(1)
//
//	// Append marker, only meaningful as the last token of an add
//	end := pointer.Root().Append("items").Append(pointer.AppendToken)
//	end.IsAppend() // true
//
// Tokens are kept unescaped; String() performs the ~0 / ~1 escaping.
//
// # Related Packages
//
//   - github.com/signadot/jsont/ir - resolution of pointers against nodes
package pointer
