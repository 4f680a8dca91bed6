package ir

// Truth reports the truthiness of a node: empty containers, empty
// strings, zero, false and null are false.
func Truth(node *Node) bool {
	switch node.Type {
	case ObjectType:
		return len(node.Fields) != 0
	case ArrayType:
		return len(node.Values) != 0
	case StringType:
		return node.String != ""
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64 != 0
		}
		d, err := node.Decimal()
		if err != nil {
			return node.Number != ""
		}
		return !d.IsZero()
	case BoolType:
		return node.Bool
	case NullType:
		return false
	default:
		panic("type")
	}
}
