package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/format"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/templates"
)

func newConfig() *MainConfig {
	return &MainConfig{Indent: 0, Vars: map[string]*ir.Node{}}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile(t, dir, "orig.json", `{"a":1,"b":[1,2]}`)
	target := writeFile(t, dir, "target.yaml", "a: 1\nb: [1, 2, 3]\n")
	tmpl := writeFile(t, dir, "inc.json", `{"rules":[{"match":{"type":"number"},"output":{"$value":"_ + vars.n"}}]}`)
	tests := []struct {
		name  string
		args  []string
		stdin string
		vars  []string
		want  string
	}{
		{
			name: "diff",
			args: []string{"diff", orig, target},
			want: `{"b":[1,2,3]}`,
		},
		{
			name: "patch",
			args: []string{"PATCH", orig, target},
			want: `[{"op":"add","path":"/b/2","value":3}]`,
		},
		{
			name:  "merge from stdin",
			args:  []string{"merge", "-", orig},
			stdin: `{"a":null}`,
			want:  `{"b":[1,2]}`,
		},
		{
			name:  "apply",
			args:  []string{"apply", "-", orig},
			stdin: `[{"op":"remove","path":"/b/0"}]`,
			want:  `{"a":1,"b":[2]}`,
		},
		{
			name: "transform",
			args: []string{"transform", tmpl, orig},
			vars: []string{"n=10"},
			want: `{"a":11,"b":[11,12]}`,
		},
		{
			name: "template fallback",
			args: []string{tmpl, orig},
			vars: []string{"n=-1"},
			want: `{"a":0,"b":[0,1]}`,
		},
		{
			name:  "bundled template",
			args:  []string{"merge-arrays", "-"},
			stdin: `[[1],[2,3]]`,
			want:  `[1,2,3]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig()
			cfg.Check = true
			for _, v := range tt.vars {
				if err := varFunc(cfg.Vars, v); err != nil {
					t.Fatal(err)
				}
			}
			out := bytes.NewBuffer(nil)
			if err := run(cfg, strings.NewReader(tt.stdin), out, tt.args); err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestRunOutput(t *testing.T) {
	cfg := newConfig()
	cfg.Indent = 2
	cfg.Sort = true
	out := bytes.NewBuffer(nil)
	err := run(cfg, strings.NewReader(`{"z":1,"a":2}`), out, []string{"merge-objects", "-"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "{}\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	out.Reset()
	err = run(cfg, strings.NewReader(`[{"z":1,"a":2}]`), out, []string{"merge-objects", "-"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "{\n  \"a\": 2,\n  \"z\": 1\n}\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	yf := format.YAMLFormat
	cfg.OutFormat = &yf
	out.Reset()
	err = run(cfg, strings.NewReader(`[{"z":1,"a":2}]`), out, []string{"merge-objects", "-"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "a: 2\nz: 1\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{}`)
	tests := []struct {
		args []string
		err  error
	}{
		{nil, cli.ErrUsage},
		{[]string{"diff", doc}, cli.ErrUsage},
		{[]string{"diff", doc, doc, doc}, cli.ErrUsage},
		{[]string{"diff", "-", "-"}, cli.ErrUsage},
		{[]string{"no-such-template", doc}, templates.ErrNotFound},
		{[]string{"diff", filepath.Join(dir, "missing.json"), doc}, os.ErrNotExist},
	}
	for _, tt := range tests {
		err := run(newConfig(), strings.NewReader(""), bytes.NewBuffer(nil), tt.args)
		if !errors.Is(err, tt.err) {
			t.Errorf("%v: got %v want %v", tt.args, err, tt.err)
		}
	}
}

func TestVarFunc(t *testing.T) {
	vars := map[string]*ir.Node{}
	for _, a := range []string{"s=hello", "n=3", "o.x=true", "o.y.z=[1, 2]", "e="} {
		if err := varFunc(vars, a); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	got := map[string]string{}
	for k, v := range vars {
		got[k] = encode.MustString(v)
	}
	want := map[string]string{
		"s": `"hello"`,
		"n": `3`,
		"o": `{"x":true,"y":{"z":[1,2]}}`,
		"e": `null`,
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s: got %s want %s", k, got[k], w)
		}
	}
	for _, a := range []string{"novalue", "=1", "s.x=1"} {
		if err := varFunc(vars, a); !errors.Is(err, cli.ErrUsage) {
			t.Errorf("%s: got %v", a, err)
		}
	}
}
