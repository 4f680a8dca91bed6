package debug

import (
	"bytes"
	"testing"

	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
)

func TestLogf(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	save := out
	out = buf
	defer func() { out = save }()

	node := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
	Logf("node %s any %s map %s n %d\n", encode.MustString(node), []any{"x"}, map[string]any{"k": true}, 3)
	want := "node {\"a\":1} any [\"x\"] map {\"k\":true} n 3\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
