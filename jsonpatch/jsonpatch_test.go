package jsonpatch

import (
	"errors"
	"testing"

	evjp "github.com/evanphx/json-patch"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
	"github.com/signadot/jsont/parse"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return node
}

type diffTest struct {
	name     string
	from, to string
	want     string
}

var diffTests = []diffTest{
	{
		name: "append",
		from: `{"items":[1,2,3]}`,
		to:   `{"items":[1,2,3,4]}`,
		want: `[{"op":"add","path":"/items/3","value":4}]`,
	},
	{
		name: "remove middle",
		from: `{"items":[1,2,3]}`,
		to:   `{"items":[1,3]}`,
		want: `[{"op":"remove","path":"/items/1"}]`,
	},
	{
		name: "equal",
		from: `{"a":[1,{"b":null}],"c":"d"}`,
		to:   `{"c":"d","a":[1,{"b":null}]}`,
		want: `[]`,
	},
	{
		name: "numbers by value",
		from: `{"a":1.0}`,
		to:   `{"a":1}`,
		want: `[]`,
	},
	{
		name: "object keys",
		from: `{"a":1,"b":2,"c":3}`,
		to:   `{"a":1,"c":4,"d":5}`,
		want: `[{"op":"remove","path":"/b"},{"op":"replace","path":"/c","value":4},{"op":"add","path":"/d","value":5}]`,
	},
	{
		name: "type change",
		from: `{"a":{"b":1}}`,
		to:   `{"a":[1]}`,
		want: `[{"op":"replace","path":"/a","value":[1]}]`,
	},
	{
		name: "nothing shared",
		from: `{"k":0,"x":[1,2]}`,
		to:   `{"k":0,"x":[3,4]}`,
		want: `[{"op":"replace","path":"/x","value":[3,4]}]`,
	},
	{
		name: "nested edit under a lone key",
		from: `{"a":{"b":1,"c":2}}`,
		to:   `{"a":{"b":1,"c":3,"d":4}}`,
		want: `[{"op":"replace","path":"/a/c","value":3},{"op":"add","path":"/a/d","value":4}]`,
	},
	{
		name: "array edits under a lone key",
		from: `{"items":[1,2,3]}`,
		to:   `{"items":[1,3,4]}`,
		want: `[{"op":"remove","path":"/items/1"},{"op":"add","path":"/items/2","value":4}]`,
	},
	{
		name: "lone key nothing shared below",
		from: `{"x":[1,2]}`,
		to:   `{"x":[3,4]}`,
		want: `[{"op":"replace","path":"/x","value":[3,4]}]`,
	},
	{
		name: "scalar root",
		from: `1`,
		to:   `"one"`,
		want: `[{"op":"replace","path":"","value":"one"}]`,
	},
	{
		name: "nested",
		from: `{"a":{"b":{"c":1,"d":2}}}`,
		to:   `{"a":{"b":{"c":1,"d":3}}}`,
		want: `[{"op":"replace","path":"/a/b/d","value":3}]`,
	},
	{
		name: "escaped keys",
		from: `{"a/b":1,"m~n":2}`,
		to:   `{"a/b":2,"m~n":2}`,
		want: `[{"op":"replace","path":"/a~1b","value":2}]`,
	},
	{
		name: "removals from the end",
		from: `{"v":[0,1,2,3,4,5]}`,
		to:   `{"v":[0,5]}`,
		want: `[{"op":"remove","path":"/v/4"},{"op":"remove","path":"/v/3"},{"op":"remove","path":"/v/2"},{"op":"remove","path":"/v/1"}]`,
	},
	{
		name: "element edit in place",
		from: `[{"id":1,"n":"a"},{"id":2,"n":"b"}]`,
		to:   `[{"id":1,"n":"a"},{"id":2,"n":"c"}]`,
		want: `[{"op":"replace","path":"/1/n","value":"c"}]`,
	},
}

func TestDiff(t *testing.T) {
	for _, tt := range diffTests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := mustParse(t, tt.from), mustParse(t, tt.to)
			patch := Diff(from, to)
			if got := patch.String(); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestDiffArraysByIndex(t *testing.T) {
	from := mustParse(t, `{"items":[1,2,3]}`)
	to := mustParse(t, `{"items":[1,3]}`)
	want := `[{"op":"replace","path":"/items/1","value":3},{"op":"remove","path":"/items/2"}]`
	if got := Diff(from, to, DiffArraysByIndex()).String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

var roundTrips = [][2]string{
	{`{}`, `{"a":1}`},
	{`{"a":1}`, `{}`},
	{`[]`, `[1,2,3]`},
	{`[1,2,3]`, `[]`},
	{`[1,2,3]`, `[3,2,1]`},
	{`[1,2,2,3,1]`, `[2,1,3,3,2,1]`},
	{`["a","b","c","d"]`, `["x","b","y","d","z"]`},
	{`{"a":[{"x":1},{"y":2}],"b":true}`, `{"b":false,"a":[{"y":2},{"x":1,"z":[]}],"c":null}`},
	{`{"a":{"b":{"c":[1,2,{"d":"e"}]}}}`, `{"a":{"b":{"c":[1,{"d":"f"},2]}}}`},
	{`[[1,2],[3,4]]`, `[[1],[3,4,5],[]]`},
	{`null`, `{"a":1}`},
	{`"s"`, `"s"`},
	{`{"~":1,"/":2,"":3}`, `{"~":2,"":[3]}`},
	{`{"n":1e2,"m":[1.5,2]}`, `{"n":100,"m":[2,1.5]}`},
}

func TestDiffApplyRoundTrip(t *testing.T) {
	optSets := map[string][]DiffOption{
		"lcs":      nil,
		"index":    {DiffArraysByIndex()},
		"parallel": {DiffParallel(4)},
	}
	for name, opts := range optSets {
		for _, rt := range roundTrips {
			from, to := mustParse(t, rt[0]), mustParse(t, rt[1])
			fromCopy := from.Clone()
			patch := Diff(from, to, opts...)
			got, err := Apply(from, patch)
			if err != nil {
				t.Errorf("%s: apply %s to %s: %v", name, patch, rt[0], err)
				continue
			}
			if !ir.Equal(got, to) {
				t.Errorf("%s: %s + %s = %s, want %s", name, rt[0], patch, encode.MustString(got), rt[1])
			}
			if !ir.Equal(from, fromCopy) {
				t.Errorf("%s: apply modified its input %s", name, rt[0])
			}
		}
	}
}

func TestDiffParallelMatchesSequential(t *testing.T) {
	for _, rt := range roundTrips {
		from, to := mustParse(t, rt[0]), mustParse(t, rt[1])
		seq := Diff(from, to).String()
		par := Diff(from, to, DiffParallel(3)).String()
		if seq != par {
			t.Errorf("%s -> %s:\nsequential %s\nparallel   %s", rt[0], rt[1], seq, par)
		}
	}
}

// oracleApply applies patch with github.com/evanphx/json-patch. The
// document is wrapped in an object so that operations on the root are
// ordinary member operations.
func oracleApply(t *testing.T, doc *ir.Node, patch Patch) *ir.Node {
	t.Helper()
	prefix := pointer.Root().Append("doc")
	wrapped := make(Patch, len(patch))
	for i, op := range patch {
		op.Path = prefix.Concat(op.Path)
		if op.Op.hasFrom() {
			op.From = prefix.Concat(op.From)
		}
		wrapped[i] = op
	}
	ep, err := evjp.DecodePatch([]byte(wrapped.String()))
	if err != nil {
		t.Fatal(err)
	}
	in := ir.FromKeyVals([]ir.KeyVal{{Key: "doc", Val: doc}})
	out, err := ep.Apply([]byte(encode.MustString(in)))
	if err != nil {
		t.Fatalf("oracle apply %s: %v", patch, err)
	}
	return ir.Get(mustParse(t, string(out)), "doc")
}

func TestDiffOracle(t *testing.T) {
	for _, rt := range roundTrips {
		from, to := mustParse(t, rt[0]), mustParse(t, rt[1])
		patch := Diff(from, to)
		if got := oracleApply(t, from, patch); !ir.Equal(got, to) {
			t.Errorf("%s + %s = %s by oracle, want %s", rt[0], patch, encode.MustString(got), rt[1])
		}
	}
}

type applyTest struct {
	name  string
	doc   string
	patch string
	want  string
	err   error
	index int
}

var applyTests = []applyTest{
	{name: "add new key", doc: `{"a":1}`, patch: `[{"op":"add","path":"/b","value":2}]`, want: `{"a":1,"b":2}`},
	{name: "add overwrites", doc: `{"a":1}`, patch: `[{"op":"add","path":"/a","value":2}]`, want: `{"a":2}`},
	{name: "add inserts", doc: `[1,3]`, patch: `[{"op":"add","path":"/1","value":2}]`, want: `[1,2,3]`},
	{name: "add at length", doc: `[1]`, patch: `[{"op":"add","path":"/1","value":2}]`, want: `[1,2]`},
	{name: "add appends", doc: `[1]`, patch: `[{"op":"add","path":"/-","value":2}]`, want: `[1,2]`},
	{name: "add root", doc: `[1]`, patch: `[{"op":"add","path":"","value":{"x":null}}]`, want: `{"x":null}`},
	{name: "add past end", doc: `[1]`, patch: `[{"op":"add","path":"/3","value":2}]`, err: ir.ErrIndexOutOfRange},
	{name: "add missing parent", doc: `{}`, patch: `[{"op":"add","path":"/a/b","value":2}]`, err: ErrPathNotFound},
	{name: "remove key", doc: `{"a":1,"b":2}`, patch: `[{"op":"remove","path":"/a"}]`, want: `{"b":2}`},
	{name: "remove shifts", doc: `[1,2,3]`, patch: `[{"op":"remove","path":"/0"}]`, want: `[2,3]`},
	{name: "remove missing", doc: `{"a":1}`, patch: `[{"op":"remove","path":"/b"}]`, err: ErrPathNotFound},
	{name: "remove root", doc: `{"a":1}`, patch: `[{"op":"remove","path":""}]`, err: ErrPathNotFound},
	{name: "remove bad index", doc: `[1]`, patch: `[{"op":"remove","path":"/01"}]`, err: ir.ErrNotFound},
	{name: "replace", doc: `{"a":[1,2]}`, patch: `[{"op":"replace","path":"/a/1","value":"x"}]`, want: `{"a":[1,"x"]}`},
	{name: "replace missing", doc: `{"a":1}`, patch: `[{"op":"replace","path":"/b","value":1}]`, err: ErrPathNotFound},
	{name: "replace append marker", doc: `[1]`, patch: `[{"op":"replace","path":"/-","value":1}]`, err: ErrPathNotFound},
	{name: "replace root", doc: `{"a":1}`, patch: `[{"op":"replace","path":"","value":2}]`, want: `2`},
	{name: "move", doc: `{"a":{"b":1},"c":{}}`, patch: `[{"op":"move","from":"/a/b","path":"/c/d"}]`, want: `{"a":{},"c":{"d":1}}`},
	{name: "move in array", doc: `[1,2,3]`, patch: `[{"op":"move","from":"/0","path":"/2"}]`, want: `[2,3,1]`},
	{name: "move to self", doc: `{"a":1}`, patch: `[{"op":"move","from":"/a","path":"/a"}]`, want: `{"a":1}`},
	{name: "move into descendant", doc: `{"a":{"b":{}}}`, patch: `[{"op":"move","from":"/a","path":"/a/b/c"}]`, err: ErrInvalidMove},
	{name: "move missing", doc: `{}`, patch: `[{"op":"move","from":"/a","path":"/b"}]`, err: ErrPathNotFound},
	{name: "copy", doc: `{"a":{"b":[1]}}`, patch: `[{"op":"copy","from":"/a/b","path":"/c"}]`, want: `{"a":{"b":[1]},"c":[1]}`},
	{name: "copy is deep", doc: `{"a":[1]}`, patch: `[{"op":"copy","from":"/a","path":"/b"},{"op":"add","path":"/b/-","value":2}]`, want: `{"a":[1],"b":[1,2]}`},
	{name: "test", doc: `{"a":[1,{"b":2.0}]}`, patch: `[{"op":"test","path":"/a","value":[1,{"b":2}]}]`, want: `{"a":[1,{"b":2.0}]}`},
	{name: "test fails", doc: `{"a":1}`, patch: `[{"op":"test","path":"/a","value":2},{"op":"add","path":"/b","value":3}]`, err: ErrTestFailed},
	{name: "test missing", doc: `{"a":1}`, patch: `[{"op":"test","path":"/b","value":null}]`, err: ErrPathNotFound},
	{
		name:  "later failure",
		doc:   `{"a":1}`,
		patch: `[{"op":"add","path":"/b","value":3},{"op":"remove","path":"/a"},{"op":"remove","path":"/zz"}]`,
		err:   ErrPathNotFound,
		index: 2,
	},
}

func TestApply(t *testing.T) {
	for _, tt := range applyTests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.doc)
			patch, err := Parse([]byte(tt.patch))
			if err != nil {
				t.Fatal(err)
			}
			got, err := Apply(doc, patch)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got error %v, want %v", err, tt.err)
				}
				var opErr *OpError
				if !errors.As(err, &opErr) {
					t.Fatalf("expected *OpError, got %T", err)
				}
				if opErr.Index != tt.index {
					t.Errorf("failed at %d, want %d", opErr.Index, tt.index)
				}
				if got != nil {
					t.Errorf("got a document on failure")
				}
				if !ir.Equal(doc, mustParse(t, tt.doc)) {
					t.Errorf("document modified on failure: %s", encode.MustString(doc))
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if want := mustParse(t, tt.want); !ir.Equal(got, want) {
				t.Errorf("got %s, want %s", encode.MustString(got), tt.want)
			}
		})
	}
}

func TestApplyKeepsKeyOrder(t *testing.T) {
	doc := mustParse(t, `{"z":1,"a":2}`)
	patch, err := Parse([]byte(`[{"op":"add","path":"/m","value":3},{"op":"replace","path":"/z","value":0}]`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Apply(doc, patch)
	if err != nil {
		t.Fatal(err)
	}
	if s := encode.MustString(got); s != `{"z":0,"a":2,"m":3}` {
		t.Errorf("got %s", s)
	}
}

func TestApplyResultIsPrivate(t *testing.T) {
	patch := Patch{Add(pointer.MustParse("/a"), mustParse(t, `{"b":1}`))}
	got, err := Apply(mustParse(t, `{}`), patch)
	if err != nil {
		t.Fatal(err)
	}
	ir.Get(got, "a").Put("c", ir.Null())
	if len(patch[0].Value.Fields) != 1 {
		t.Errorf("patch value shared with result")
	}
}

func TestDecode(t *testing.T) {
	bad := []string{
		`{}`,
		`[1]`,
		`[{"path":"/a"}]`,
		`[{"op":"frob","path":"/a"}]`,
		`[{"op":"add","path":"/a"}]`,
		`[{"op":"remove"}]`,
		`[{"op":"remove","path":"a"}]`,
		`[{"op":"remove","path":"/~2"}]`,
		`[{"op":"move","path":"/a"}]`,
		`[{"op":"copy","path":"/a","from":3}]`,
		`[{"op":"test","path":"/a","value":1},{"op":1,"path":"/a"}]`,
	}
	for _, s := range bad {
		if _, err := Parse([]byte(s)); !errors.Is(err, ErrMalformedPatch) {
			t.Errorf("%s: got %v, want ErrMalformedPatch", s, err)
		}
	}
	p, err := Parse([]byte(`[{"op":"add","path":"/a","value":null,"extra":1},{"op":"move","from":"/a","path":"/b"}]`))
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"op":"add","path":"/a","value":null},{"op":"move","path":"/b","from":"/a"}]`
	if got := p.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
