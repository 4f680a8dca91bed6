// Package parse decodes JSON and YAML text into ir nodes.
//
// JSON is read with encoding/json's token stream so that object key order
// and number literals are preserved. YAML is read through the gopkg.in/yaml.v3
// node API for the same reason; YAML input is restricted to values that
// have a JSON representation.
//
// # Usage
//
//	node, err := parse.Parse(data)                  // JSON
//	node, err := parse.Parse(data, parse.ParseYAML())
//
// Malformed input yields a *Error carrying the offset (and line and column)
// of the problem; errors.Is(err, parse.ErrParse) holds for all of them.
package parse

import (
	"github.com/signadot/jsont/format"
	"github.com/signadot/jsont/ir"
)

const defaultMaxDepth = 10000

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{format: format.JSONFormat, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	switch o.format {
	case format.YAMLFormat:
		return parseYAML(d, o)
	default:
		return parseJSON(d, o)
	}
}
