package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType: "object",
		ArrayType:  "array",
		StringType: "string",
		NumberType: "number",
		BoolType:   "bool",
		NullType:   "null",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := ParseType(string(d))
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

// ParseType maps a type name as produced by String back to its Type.
// "boolean" and "integer" are accepted as aliases.
func ParseType(s string) (Type, bool) {
	t, ok := map[string]Type{
		"null":    NullType,
		"bool":    BoolType,
		"boolean": BoolType,
		"number":  NumberType,
		"integer": NumberType,
		"string":  StringType,
		"array":   ArrayType,
		"object":  ObjectType,
	}[s]
	return t, ok
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		ObjectType,
		ArrayType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}
