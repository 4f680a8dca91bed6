// Package libdiff aligns two sequences so that diffs can be expressed in
// terms of kept, deleted and inserted runs.
//
// # Usage
//
//	runs := libdiff.AlignNodes(from.Values, to.Values)
//	for _, run := range runs {
//	    switch run.Op {
//	    case libdiff.Keep:
//	    case libdiff.Delete:
//	    case libdiff.Insert:
//	    }
//	}
//
// Alignment is a longest common subsequence computed by
// github.com/sergi/go-diff over sequences where every distinct element is
// mapped to a single rune.
//
// # Related Packages
//
//   - github.com/signadot/jsont/jsonpatch - stepwise diff built on alignment
package libdiff
