package jsont

import (
	"errors"
	"testing"

	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/jsonpatch"
	"github.com/signadot/jsont/parse"
	"github.com/signadot/jsont/template"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return node
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%s) = %v, %t", m, got, ok)
		}
	}
	for in, want := range map[string]Mode{"DIFF": ModeDiff, "Merge": ModeMerge, "transForm": ModeTransform} {
		if got, ok := ParseMode(in); !ok || got != want {
			t.Errorf("ParseMode(%q) = %v, %t", in, got, ok)
		}
	}
	if _, ok := ParseMode("merge-arrays"); ok {
		t.Error("template name parsed as a mode")
	}
	var m Mode
	if err := m.UnmarshalText([]byte("nope")); !errors.Is(err, ErrBadMode) {
		t.Errorf("got %v", err)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		mode     Mode
		op1, op2 string
		want     string
	}{
		{ModeDiff, `{"a":1,"b":2}`, `{"a":1,"c":3}`, `{"c":3,"b":null}`},
		{ModeMerge, `{"b":null,"c":3}`, `{"a":1,"b":2}`, `{"a":1,"c":3}`},
		{ModePatch, `[1,2]`, `[1,2,3]`, `[{"op":"add","path":"/2","value":3}]`},
		{ModeApply, `[{"op":"replace","path":"/a","value":true}]`, `{"a":1}`, `{"a":true}`},
		{ModeTransform, `{"rules":[{"match":{"type":"number"},"output":{"$value":"_ + 1"}}]}`, `{"a":[1,2]}`, `{"a":[2,3]}`},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			op1, op2 := mustParse(t, tt.op1), mustParse(t, tt.op2)
			got, err := Run(tt.mode, op1, op2, Check(true))
			if err != nil {
				t.Fatal(err)
			}
			if s := encode.MustString(got); s != tt.want {
				t.Errorf("got %s want %s", s, tt.want)
			}
			if encode.MustString(op1) != tt.op1 || encode.MustString(op2) != tt.op2 {
				t.Error("operands modified")
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		mode     Mode
		op1, op2 string
		err      error
	}{
		{ModeApply, `{"op":"add"}`, `{}`, jsonpatch.ErrMalformedPatch},
		{ModeApply, `[{"op":"test","path":"/a","value":2}]`, `{"a":1}`, jsonpatch.ErrTestFailed},
		{ModeTransform, `{"rules":[{"output":{"$nope":1}}]}`, `{}`, template.ErrMalformedTemplate},
		{ModeTransform, `{"identity":false}`, `1`, template.ErrNoMatchingRule},
		{Mode(42), `1`, `1`, ErrBadMode},
	}
	for _, tt := range tests {
		_, err := Run(tt.mode, mustParse(t, tt.op1), mustParse(t, tt.op2))
		if !errors.Is(err, tt.err) {
			t.Errorf("%s %s %s: got %v want %v", tt.mode, tt.op1, tt.op2, err, tt.err)
		}
	}
}

func TestCheck(t *testing.T) {
	docs := [][2]string{
		{`{"a":{"b":[1,2,3]},"c":"x"}`, `{"a":{"b":[1,3]},"d":[]}`},
		{`[1,[2,3],{"x":null}]`, `[[2],{"x":1},4]`},
		{`"root"`, `{"now":"object"}`},
		{`{"a":1}`, `[]`},
	}
	for _, d := range docs {
		for _, mode := range []Mode{ModeDiff, ModePatch} {
			if _, err := Run(mode, mustParse(t, d[0]), mustParse(t, d[1]), Check(true)); err != nil {
				t.Errorf("%s %s %s: %v", mode, d[0], d[1], err)
			}
		}
	}
}

func TestCheckDetectsMismatch(t *testing.T) {
	err := check(ModePatch, mustParse(t, `[1]`), mustParse(t, `[2]`), mustParse(t, `[]`))
	if !errors.Is(err, ErrCheck) {
		t.Errorf("got %v", err)
	}
}
