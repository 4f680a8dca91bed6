package ir

import (
	"errors"
	"testing"

	"github.com/signadot/jsont/ir/pointer"
)

func testDoc() *Node {
	return obj(
		"a", FromInt(1),
		"items", arr(FromInt(1), FromInt(2), FromInt(3)),
		"m", obj("x/y", FromString("slash"), "t~", FromString("tilde")),
	)
}

func TestResolve(t *testing.T) {
	doc := testDoc()
	tests := []struct {
		ptr  string
		want *Node
		err  error
	}{
		{"", doc, nil},
		{"/a", FromInt(1), nil},
		{"/items/2", FromInt(3), nil},
		{"/m/x~1y", FromString("slash"), nil},
		{"/m/t~0", FromString("tilde"), nil},
		{"/nope", nil, ErrNotFound},
		{"/a/b", nil, ErrNotFound},
		{"/items/3", nil, ErrIndexOutOfRange},
		{"/items/-", nil, ErrIndexOutOfRange},
		{"/items/01", nil, ErrNotFound},
		{"/items/x", nil, ErrBadIndex},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			got, err := Resolve(doc, pointer.MustParse(tt.ptr))
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got error %v, want %v", err, tt.err)
				}
				var pe *PathError
				if !errors.As(err, &pe) {
					t.Errorf("expected a *PathError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("got %v", ToAny(got))
			}
		})
	}
}

func TestInsert(t *testing.T) {
	doc := testDoc()
	var err error
	doc, err = Insert(doc, pointer.MustParse("/items/0"), FromInt(0))
	if err != nil {
		t.Fatal(err)
	}
	doc, err = Insert(doc, pointer.MustParse("/items/-"), FromInt(4))
	if err != nil {
		t.Fatal(err)
	}
	doc, err = Insert(doc, pointer.MustParse("/items/5"), FromInt(5))
	if err != nil {
		t.Fatal(err)
	}
	want := arr(FromInt(0), FromInt(1), FromInt(2), FromInt(3), FromInt(4), FromInt(5))
	if !Equal(Get(doc, "items"), want) {
		t.Errorf("got %v", ToAny(Get(doc, "items")))
	}
	if _, err := Insert(doc, pointer.MustParse("/items/7"), Null()); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
	if _, err := Insert(doc, pointer.MustParse("/missing/x"), Null()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	doc, err = Insert(doc, pointer.MustParse("/a"), FromString("over"))
	if err != nil {
		t.Fatal(err)
	}
	if Get(doc, "a").String != "over" || doc.Keys()[0] != "a" {
		t.Error("add on existing key should overwrite in place")
	}
	root, err := Insert(doc, nil, FromInt(7))
	if err != nil || !Equal(root, FromInt(7)) {
		t.Error("insert at root replaces the document")
	}
}

func TestSetRemove(t *testing.T) {
	doc := testDoc()
	if _, err := Set(doc, pointer.MustParse("/nope"), Null()); !errors.Is(err, ErrNotFound) {
		t.Errorf("set of a missing key: %v", err)
	}
	if _, err := Set(doc, pointer.MustParse("/items/1"), FromString("two")); err != nil {
		t.Fatal(err)
	}
	removed, err := Remove(doc, pointer.MustParse("/items/0"))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(removed, FromInt(1)) {
		t.Errorf("removed %v", ToAny(removed))
	}
	if !Equal(Get(doc, "items"), arr(FromString("two"), FromInt(3))) {
		t.Errorf("got %v", ToAny(Get(doc, "items")))
	}
	if _, err := Remove(doc, pointer.MustParse("/m/x~1y")); err != nil {
		t.Fatal(err)
	}
	if Has(doc, pointer.MustParse("/m/x~1y")) {
		t.Error("field still present")
	}
	if _, err := Remove(doc, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing the root: %v", err)
	}
}

func TestWalk(t *testing.T) {
	var got []string
	Walk(testDoc(), func(p pointer.Pointer, _ *Node) bool {
		got = append(got, p.String())
		return p.String() != "/m"
	})
	want := []string{"", "/a", "/items", "/items/0", "/items/1", "/items/2", "/m"}
	if len(got) != len(want) {
		t.Fatalf("got %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%d: got %q want %q", i, got[i], want[i])
		}
	}
}
