package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// ToAny converts y to plain Go values: map[string]any, []any, string,
// bool, nil, int for integers that fit and float64 for other numbers.
func ToAny(y *Node) any {
	switch y.Type {
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, field := range y.Fields {
			res[field.String] = ToAny(y.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, elt := range y.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil && *y.Int64 >= math.MinInt && *y.Int64 <= math.MaxInt {
			return int(*y.Int64)
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		d, err := y.Decimal()
		if err != nil {
			return y.Number
		}
		f, err := d.Float64()
		if err != nil {
			return y.Number
		}
		return f
	case BoolType:
		return y.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}

// FromAny converts plain Go values back into a node. Maps produce objects
// with sorted keys.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x.Clone(), nil
	case []*Node:
		vals := make([]*Node, len(x))
		for i := range x {
			vals[i] = x[i].Clone()
		}
		return FromSlice(vals), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		return FromNumber(x.String()), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case int32:
		return FromInt(int64(x)), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return FromNumber(fmt.Sprint(x)), nil
		}
		return FromInt(int64(x)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%v is not representable in json", x)
		}
		return FromFloat(x), nil
	case float32:
		return FromAny(float64(x))
	case []any:
		vals := make([]*Node, len(x))
		for i := range x {
			n, err := FromAny(x[i])
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, val := range x {
			n, err := FromAny(val)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return FromMap(m), nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (*Node, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FromAny(uint(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return FromAny(rv.Float())
	case reflect.Slice, reflect.Array:
		vals := make([]*Node, rv.Len())
		for i := range vals {
			n, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map with %s keys is not representable in json", rv.Type().Key())
		}
		m := make(map[string]*Node, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			n, err := FromAny(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			m[iter.Key().String()] = n
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("type %s is not representable in json", rv.Type())
}
