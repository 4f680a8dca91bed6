package jsont

import (
	"errors"
	"fmt"

	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
	"github.com/signadot/jsont/jsonpatch"
	"github.com/signadot/jsont/parse"

	evjp "github.com/evanphx/json-patch"
)

var ErrCheck = errors.New("check failed")

// the document is wrapped in an object under this key so that patches
// of the root become member operations.
const wrapKey = "doc"

func wrap(node *ir.Node) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{{Key: wrapKey, Val: node}})
}

func unwrap(d []byte) (*ir.Node, error) {
	node, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	res := ir.Get(node, wrapKey)
	if res == nil {
		return ir.Null(), nil
	}
	return res, nil
}

// rebase prefixes every pointer of p with prefix.
func rebase(p jsonpatch.Patch, prefix pointer.Pointer) jsonpatch.Patch {
	res := make(jsonpatch.Patch, len(p))
	for i, op := range p {
		op.Path = prefix.Concat(op.Path)
		if op.Op == jsonpatch.OpMove || op.Op == jsonpatch.OpCopy {
			op.From = prefix.Concat(op.From)
		}
		res[i] = op
	}
	return res
}

// check applies patch to original independently and compares the result
// with target.
func check(mode Mode, original, target, patch *ir.Node) error {
	doc := []byte(encode.MustString(wrap(original)))
	var (
		out []byte
		err error
	)
	switch mode {
	case ModeDiff:
		out, err = evjp.MergePatch(doc, []byte(encode.MustString(wrap(patch))))
	case ModePatch:
		var p jsonpatch.Patch
		p, err = jsonpatch.Decode(patch)
		if err != nil {
			return err
		}
		var ep evjp.Patch
		ep, err = evjp.DecodePatch([]byte(rebase(p, pointer.Root().Append(wrapKey)).String()))
		if err == nil {
			out, err = ep.Apply(doc)
		}
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCheck, mode, err)
	}
	got, err := unwrap(out)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCheck, mode, err)
	}
	if !ir.Equal(got, target) {
		return fmt.Errorf("%w: %s gave %s, want %s", ErrCheck, mode, encode.MustString(got), encode.MustString(target))
	}
	return nil
}
