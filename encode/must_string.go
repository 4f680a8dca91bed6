package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/jsont/ir"
)

// MustString encodes node as compact JSON, panicking on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	opts = append([]EncodeOption{EncodeIndent(0)}, opts...)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
