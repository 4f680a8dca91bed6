// Package encode writes IR nodes as JSON or YAML text.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// compact JSON with sorted keys
//	err = encode.Encode(node, w, encode.EncodeIndent(0), encode.EncodeSortKeys(true))
//
//	// YAML
//	err = encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
// JSON output is indented with 4 spaces unless told otherwise. Object keys
// are written in document order and number literals are written as they
// were parsed.
//
// # Related Packages
//
//   - github.com/signadot/jsont/ir - IR representation
//   - github.com/signadot/jsont/parse - Parse text to IR
package encode
