package eval

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"

	"github.com/expr-lang/expr"
)

// overridden builtins; ours are deterministic on maps.
var shadowed = []string{"keys", "values", "get", "join"}

func exprOpts() []expr.Option {
	opts := []expr.Option{expr.Env(envShape{})}
	for _, name := range shadowed {
		opts = append(opts, expr.DisableBuiltin(name))
	}
	for _, t := range ir.Types() {
		name := "is" + strings.ToUpper(t.String()[:1]) + t.String()[1:]
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			return typeOf(params[0]) == t, nil
		},
			new(func(any) bool)))
	}
	return append(opts,
		expr.Function("typeOf", func(params ...any) (any, error) {
			return typeOf(params[0]).String(), nil
		},
			new(func(any) string)),
		expr.Function("keys", func(params ...any) (any, error) {
			m, ok := params[0].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("keys of %T", params[0])
			}
			return slices.Sorted(maps.Keys(m)), nil
		},
			new(func(any) []string)),
		expr.Function("values", func(params ...any) (any, error) {
			switch x := params[0].(type) {
			case map[string]any:
				res := make([]any, 0, len(x))
				for _, k := range slices.Sorted(maps.Keys(x)) {
					res = append(res, x[k])
				}
				return res, nil
			case []any:
				return x, nil
			}
			return nil, fmt.Errorf("values of %T", params[0])
		},
			new(func(any) []any)),
		expr.Function("get", func(params ...any) (any, error) {
			return get(params[0], params[1].(string))
		},
			new(func(any, string) any)),
		expr.Function("join", func(params ...any) (any, error) {
			return join(params[0], params[1].(string))
		},
			new(func(any, string) string)),
	)
}

func typeOf(v any) ir.Type {
	switch v.(type) {
	case nil:
		return ir.NullType
	case bool:
		return ir.BoolType
	case string:
		return ir.StringType
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return ir.NumberType
	case map[string]any:
		return ir.ObjectType
	}
	node, err := ir.FromAny(v)
	if err != nil {
		return ir.NullType
	}
	return node.Type
}

// get resolves a pointer within a value, giving nil when it does not
// resolve.
func get(v any, p string) (any, error) {
	ptr, err := pointer.Parse(p)
	if err != nil {
		return nil, err
	}
	node, err := ir.FromAny(v)
	if err != nil {
		return nil, err
	}
	res, err := ir.Resolve(node, ptr)
	if err != nil {
		return nil, nil
	}
	return ir.ToAny(res), nil
}

func join(v any, sep string) (string, error) {
	node, err := ir.FromAny(v)
	if err != nil {
		return "", err
	}
	if node.Type != ir.ArrayType {
		return "", fmt.Errorf("join of %s", node.Type)
	}
	parts := make([]string, len(node.Values))
	for i, elt := range node.Values {
		if elt.Type == ir.StringType {
			parts[i] = elt.String
			continue
		}
		parts[i] = fmt.Sprint(ir.ToAny(elt))
	}
	return strings.Join(parts, sep), nil
}
