// Package jsonpatch implements JSON Patch (RFC 6902) documents: decoding
// and validating them, computing them as the difference between two
// documents and applying them.
//
// # Usage
//
//	patch := jsonpatch.Diff(original, target)
//	res, err := jsonpatch.Apply(original, patch)
//
//	// decode a patch document
//	patch, err := jsonpatch.Parse([]byte(`[{"op":"remove","path":"/a"}]`))
//
// Apply is atomic: it works on a private copy of the document and returns
// either the fully patched document or an *OpError naming the operation
// which failed. Inputs are never modified.
//
// Diff produces add, remove and replace operations only. Array elements
// are aligned on a longest common subsequence so that inserting or
// removing an element costs a single operation.
//
// # Related Packages
//
//   - github.com/signadot/jsont/mergepatch - RFC 7396 merge patches
//   - github.com/signadot/jsont/ir/pointer - JSON pointers
package jsonpatch
