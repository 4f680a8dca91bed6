package encode

import (
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/jsont/ir"
	"gopkg.in/yaml.v3"
)

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	yn, err := toYAML(node, es)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(max(es.indent, 2))
	if err := enc.Encode(yn); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return enc.Close()
}

func toYAML(node *ir.Node, es *EncState) (*yaml.Node, error) {
	switch node.Type {
	case ir.ObjectType:
		res := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if len(node.Fields) == 0 {
			res.Style = yaml.FlowStyle
		}
		for _, i := range fieldOrder(node, es) {
			v, err := toYAML(node.Values[i], es)
			if err != nil {
				return nil, err
			}
			k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: node.Fields[i].String}
			res.Content = append(res.Content, k, v)
		}
		return res, nil
	case ir.ArrayType:
		res := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(node.Values) == 0 {
			res.Style = yaml.FlowStyle
		}
		for _, elt := range node.Values {
			v, err := toYAML(elt, es)
			if err != nil {
				return nil, err
			}
			res.Content = append(res.Content, v)
		}
		return res, nil
	case ir.StringType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: node.String}, nil
	case ir.NumberType:
		v, err := numberLiteral(node)
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v}, nil
	case ir.BoolType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(node.Bool)}, nil
	case ir.NullType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("%w: unknown node type %d", ErrEncoding, node.Type)
}
