package encode

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/jsont/format"
	"github.com/signadot/jsont/ir"
)

var ErrEncoding = errors.New("encoding error")

const defaultIndent = 4

type EncState struct {
	depth, indent int
	sortKeys      bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w followed by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: defaultIndent,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	switch es.format {
	case format.JSONFormat:
		if err := encode(node, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	default:
		return fmt.Errorf("%w: unknown format %s", ErrEncoding, es.format)
	}
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}

func writeSep(w io.Writer, es *EncState, cType ir.Type, sep string) error {
	return writeString(w, applyColor(es, cType, SepColor, sep))
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		return writeString(w, applyColor(es, ir.StringType, ValueColor, quoteString(node.String)))
	case ir.NumberType:
		v, err := numberLiteral(node)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, ir.NumberType, ValueColor, v))
	case ir.BoolType:
		return writeString(w, applyColor(es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NullType:
		return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
	default:
		return fmt.Errorf("%w: unknown node type %d", ErrEncoding, node.Type)
	}
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeSep(w, es, ir.ObjectType, "{"); err != nil {
		return err
	}
	if len(node.Fields) == 0 {
		return writeSep(w, es, ir.ObjectType, "}")
	}
	order := fieldOrder(node, es)
	es.depth++
	for n, i := range order {
		if n > 0 {
			if err := writeSep(w, es, ir.ObjectType, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, node.Fields[i].String, es); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, ir.ObjectType, "}")
}

func fieldOrder(node *ir.Node, es *EncState) []int {
	order := make([]int, len(node.Fields))
	for i := range order {
		order[i] = i
	}
	if es.sortKeys {
		slices.SortStableFunc(order, func(a, b int) int {
			return strings.Compare(node.Fields[a].String, node.Fields[b].String)
		})
	}
	return order
}

func writeField(w io.Writer, f string, es *EncState) error {
	if err := writeString(w, applyColor(es, ir.ObjectType, FieldColor, quoteString(f))); err != nil {
		return err
	}
	sep := ":"
	if es.indent != 0 {
		sep = ": "
	}
	return writeSep(w, es, ir.ObjectType, sep)
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeSep(w, es, ir.ArrayType, "["); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeSep(w, es, ir.ArrayType, "]")
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeSep(w, es, ir.ArrayType, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, ir.ArrayType, "]")
}

// numberLiteral returns the JSON text of a number node, preferring the
// literal it was parsed from.
func numberLiteral(node *ir.Node) (string, error) {
	switch {
	case node.Number != "":
		return node.Number, nil
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		return strconv.FormatFloat(*node.Float64, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("%w: number without value", ErrEncoding)
}

const hex = "0123456789abcdef"

// quoteString quotes v as a JSON string. Unlike encoding/json it leaves
// '<', '>' and '&' alone.
func quoteString(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for i := 0; i < len(v); {
		c := v[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				b.WriteByte('\\')
				b.WriteByte(c)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			default:
				if c < 0x20 || c == 0x7f {
					b.WriteString(`\u00`)
					b.WriteByte(hex[c>>4])
					b.WriteByte(hex[c&0xf])
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(v[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteString(`\ufffd`)
		case r == '\u2028' || r == '\u2029':
			b.WriteString(`\u202`)
			b.WriteByte(hex[r&0xf])
		default:
			b.WriteString(v[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}
