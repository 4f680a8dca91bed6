// Package jsont dispatches the structural transformations of JSON
// documents: merge patch diff and apply (RFC 7396), stepwise patch diff
// and apply (RFC 6902) and template transforms.
//
// Every mode takes two documents, in the order
//
//	diff      original, target   -> merge patch
//	merge     patch, document    -> document
//	patch     original, target   -> stepwise patch
//	apply     patch, document    -> document
//	transform template, input    -> document
//
// Operands are never modified.
package jsont
