package ir

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Decimal returns the exact decimal value of a number node.
func (y *Node) Decimal() (*apd.Decimal, error) {
	if y.Type != NumberType {
		return nil, fmt.Errorf("decimal of %s", y.Type)
	}
	lit := y.Number
	if lit == "" {
		switch {
		case y.Int64 != nil:
			return apd.New(*y.Int64, 0), nil
		case y.Float64 != nil:
			return new(apd.Decimal).SetFloat64(*y.Float64)
		}
		return nil, fmt.Errorf("empty number")
	}
	d, _, err := apd.NewFromString(lit)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// numberText returns a canonical text of the value of y such that equal
// numbers have equal texts.
func numberText(y *Node) string {
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	d, err := y.Decimal()
	if err != nil {
		return y.Number
	}
	if d.IsZero() {
		return "0"
	}
	var r apd.Decimal
	r.Reduce(d)
	if i, err := r.Int64(); err == nil && r.Exponent >= 0 {
		return strconv.FormatInt(i, 10)
	}
	return r.String()
}

func compareNumbers(a, b *Node) int {
	if a.Int64 != nil && b.Int64 != nil {
		switch {
		case *a.Int64 < *b.Int64:
			return -1
		case *a.Int64 > *b.Int64:
			return 1
		}
		return 0
	}
	da, errA := a.Decimal()
	db, errB := b.Decimal()
	switch {
	case errA != nil && errB != nil:
		return compareStrings(a.Number, b.Number)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return da.Cmp(db)
}
