package libdiff

import (
	"unicode/utf8"

	"github.com/signadot/jsont/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Keep Op = iota
	Delete
	Insert
)

func (op Op) String() string {
	switch op {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	}
	return "<unknown op>"
}

// Run is a maximal stretch of elements sharing an Op. From and To are the
// positions in the two sequences where the run starts; N is its length.
type Run struct {
	Op   Op
	From int
	To   int
	N    int
}

// maxSymbols is the number of distinct elements that can be mapped to
// runes, leaving out the surrogate range.
var maxSymbols = utf8.MaxRune + 1 - (0xE000 - 0xD800)

// AlignKeys aligns two lists of object keys. Like AlignNodes, it falls
// back to Replace when there are too many distinct keys.
func AlignKeys(from, to []string) []Run {
	m := map[string]rune{}
	fromRunes, ok := mapTo(m, from)
	if ok {
		var toRunes []rune
		toRunes, ok = mapTo(m, to)
		if ok {
			return align(fromRunes, toRunes)
		}
	}
	return Replace(len(from), len(to))
}

// AlignNodes aligns two lists of nodes. Elements are considered the same
// when their hashes agree; callers which need certainty should check kept
// pairs with ir.Equal.
//
// If the lists have too many distinct elements to be aligned, every
// element of from is deleted and every element of to inserted.
func AlignNodes(from, to []*ir.Node) []Run {
	m := map[uint64]rune{}
	fromRunes, ok := mapTo(m, hashes(from))
	if ok {
		var toRunes []rune
		toRunes, ok = mapTo(m, hashes(to))
		if ok {
			return align(fromRunes, toRunes)
		}
	}
	return Replace(len(from), len(to))
}

// Replace returns the alignment which keeps nothing.
func Replace(nFrom, nTo int) []Run {
	var res []Run
	if nFrom > 0 {
		res = append(res, Run{Op: Delete, N: nFrom})
	}
	if nTo > 0 {
		res = append(res, Run{Op: Insert, From: nFrom, N: nTo})
	}
	return res
}

func hashes(nodes []*ir.Node) []uint64 {
	res := make([]uint64, len(nodes))
	for i, n := range nodes {
		res[i] = n.Hash()
	}
	return res
}

func mapTo[K comparable](m map[K]rune, xs []K) ([]rune, bool) {
	rs := make([]rune, len(xs))
	for i, x := range xs {
		r, ok := m[x]
		if !ok {
			if rune(len(m)) >= maxSymbols {
				return nil, false
			}
			r = rune(len(m))
			if r >= 0xD800 {
				r += 0xE000 - 0xD800
			}
			m[x] = r
		}
		rs[i] = r
	}
	return rs, true
}

func align(from, to []rune) []Run {
	diffCfg := diffpatch.New()
	diffCfg.DiffTimeout = 0
	diffs := diffCfg.DiffMainRunes(from, to, false)
	var res []Run
	fi, ti := 0, 0
	add := func(op Op, n int) {
		if n == 0 {
			return
		}
		if k := len(res) - 1; k >= 0 && res[k].Op == op {
			res[k].N += n
		} else {
			res = append(res, Run{Op: op, From: fi, To: ti, N: n})
		}
		switch op {
		case Keep:
			fi += n
			ti += n
		case Delete:
			fi += n
		case Insert:
			ti += n
		}
	}
	for i := range diffs {
		n := utf8.RuneCountInString(diffs[i].Text)
		switch diffs[i].Type {
		case diffpatch.DiffEqual:
			add(Keep, n)
		case diffpatch.DiffDelete:
			add(Delete, n)
		case diffpatch.DiffInsert:
			add(Insert, n)
		}
	}
	return res
}
