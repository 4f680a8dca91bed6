package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/jsont/format"
	"github.com/signadot/jsont/ir"

	"gopkg.in/yaml.v3"
)

func parseYAML(d []byte, o *parseOpts) (*ir.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(d))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return ir.Null(), nil
		}
		return nil, &Error{Format: format.YAMLFormat, Err: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, yamlErr(&extra, errors.New("multiple documents"))
	}
	if doc.Kind == 0 {
		return ir.Null(), nil
	}
	return fromYAML(&doc, o, 0)
}

func fromYAML(n *yaml.Node, o *parseOpts, depth int) (*ir.Node, error) {
	if depth > o.maxDepth {
		return nil, yamlErr(n, fmt.Errorf("nesting exceeds %d", o.maxDepth))
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return ir.Null(), nil
		}
		return fromYAML(n.Content[0], o, depth)
	case yaml.AliasNode:
		return fromYAML(n.Alias, o, depth+1)
	case yaml.SequenceNode:
		vals := make([]*ir.Node, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAML(c, o, depth+1)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return ir.FromSlice(vals), nil
	case yaml.MappingNode:
		res := ir.EmptyObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, yamlErr(k, errors.New("object keys must be scalars"))
			}
			if k.ShortTag() == "!!merge" {
				return nil, yamlErr(k, errors.New("merge keys are not supported"))
			}
			val, err := fromYAML(v, o, depth+1)
			if err != nil {
				return nil, err
			}
			res.Put(k.Value, val)
		}
		return res, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, yamlErr(n, fmt.Errorf("unsupported yaml node kind %d", n.Kind))
}

func yamlScalar(n *yaml.Node) (*ir.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return ir.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, yamlErr(n, err)
		}
		return ir.FromBool(b), nil
	case "!!int":
		v := strings.ReplaceAll(n.Value, "_", "")
		if isJSONNumber(v) {
			return ir.FromNumber(v), nil
		}
		i, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return nil, yamlErr(n, err)
		}
		return ir.FromInt(i), nil
	case "!!float":
		if isJSONNumber(n.Value) {
			return ir.FromNumber(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, yamlErr(n, err)
		}
		res, err := ir.FromAny(f)
		if err != nil {
			return nil, yamlErr(n, err)
		}
		return res, nil
	default:
		return ir.FromString(n.Value), nil
	}
}

func isJSONNumber(s string) bool {
	if s == "" || !(s[0] == '-' || s[0] >= '0' && s[0] <= '9') {
		return false
	}
	var num json.Number
	return json.Unmarshal([]byte(s), &num) == nil
}

func yamlErr(n *yaml.Node, err error) error {
	return &Error{Format: format.YAMLFormat, Line: n.Line, Column: n.Column, Err: err}
}
