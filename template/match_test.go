package template

import (
	"testing"

	"github.com/signadot/jsont/parse"
)

type matchTest struct {
	in    string
	match string
	res   bool
}

var matchTests = []matchTest{
	{
		in:    `1`,
		match: `1`,
		res:   true,
	},
	{
		in:    `0`,
		match: `1`,
		res:   false,
	},
	{
		in:    `1.0`,
		match: `1`,
		res:   true,
	},
	{
		in:    `- 1`,
		match: `- 1`,
		res:   true,
	},
	{
		in:    `[]`,
		match: `[]`,
		res:   true,
	},
	{
		in:    `- 1`,
		match: `- 2`,
		res:   false,
	},
	{
		in:    "- 1\n- 2",
		match: `- 1`,
		res:   false,
	},
	{
		in:    `- 1`,
		match: `hello`,
		res:   false,
	},
	{
		in:    "a: b\nc: d",
		match: "a: b",
		res:   true,
	},
	{
		in:    "a: b",
		match: "a: b\nc: d",
		res:   false,
	},
	{
		in:    "a: b",
		match: "null",
		res:   true,
	},
	{
		in:    "a: b",
		match: "a: null",
		res:   true,
	},
	{
		in:    "c: 1",
		match: "a: null",
		res:   false,
	},
	{
		in:    "- a: b\n  b: ccc\n- a: c",
		match: "- a: b\n- null",
		res:   true,
	},
	{
		in:    "a: b\nc:\n  d:\n    x-foo: 1",
		match: "c:\n  d: {}",
		res:   true,
	},
	{
		in:    "a: b\nc:\n  d:\n    x-foo: 1",
		match: "c:\n  d: []",
		res:   false,
	},
	{
		in:    `"1"`,
		match: `1`,
		res:   false,
	},
}

func TestMatch(t *testing.T) {
	for i := range matchTests {
		mt := &matchTests[i]
		doc, err := parse.Parse([]byte(mt.in), parse.ParseYAML())
		if err != nil {
			t.Errorf("# could not decode\n%s\n# error %v\n", mt.in, err)
			continue
		}
		m, err := parse.Parse([]byte(mt.match), parse.ParseYAML())
		if err != nil {
			t.Errorf("# could not decode\n%s\n# error %v\n", mt.match, err)
			continue
		}
		if res := Match(doc, m); res != mt.res {
			t.Errorf("match %q on %q: got %t want %t", mt.match, mt.in, res, mt.res)
		}
	}
}
