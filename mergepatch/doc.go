// Package mergepatch implements JSON Merge Patch (RFC 7396).
//
// A merge patch is an ordinary document: objects in the patch are merged
// recursively into the target, null members delete, and everything else
// replaces what it addresses.
//
//	patch := mergepatch.Diff(original, target)
//	res := mergepatch.Apply(original, patch)
//
// Merge patches cannot express setting a member to null, so Apply(o,
// Diff(o, t)) reproduces t only when t has no null object members which
// are absent from or different in o.
package mergepatch
