// Package template implements rule based transforms of JSON documents.
//
// A template is a document of the form
//
//	{
//	    "identity": true,
//	    "maxDepth": 512,
//	    "vars": {"sep": ", "},
//	    "rules": [
//	        {"name": "people", "priority": 1, "match": {"path": "/people/*", "has": ["name"]},
//	         "output": {"label": {"$value": "_.name + vars.sep + _.city"}}}
//	    ]
//	}
//
// Transform visits the input from the root. For every node it is asked
// to produce, the rule with the highest priority whose pattern matches is
// selected, ties going to the rule declared first. A node no rule matches
// is copied with its children transformed, unless "identity" is false in
// which case the transform fails with ErrNoMatchingRule.
//
// # Patterns
//
// A pattern is an object whose clauses must all hold, or a string which
// is short for {"path": string}:
//
//   - path: a pointer glob matched against the node's pointer; "*" matches
//     one token and "**" any number of tokens
//   - type: a type name or a list of type names
//   - has: keys an object must have
//   - value: a document the node must contain; null matches anything
//   - key: a path.Match pattern on the node's key or index
//   - when: an expression which must be true
//
// # Output
//
// Rule outputs are documents in which objects led by a "$" key are
// instructions:
//
//	{"$literal": v}                     v, uninterpreted
//	{"$copy": sel}                      the selected node
//	{"$apply": sel}                     the selected node, transformed
//	{"$children": sel}                  the selected node with its children transformed
//	{"$value": expr}                    the value of expr
//	{"$each": sel, "$where": expr, "$key": expr, "$do": output}
//	{"$if": expr, "$then": output, "$else": output}
//	{"$flatten": output}                nested arrays spliced one level
//	{"$merge": output}                  a list of objects deep merged
//
// Selectors are pointers relative to the current node, "" being the node
// itself. Expressions are described in package eval.
//
// "$copy" and "$apply" carry nodes through unchanged. "$value" goes
// through plain Go values: an object it yields has its keys sorted and
// a number beyond the int range is rounded to float64. Use "$copy" to
// keep a subtree verbatim.
//
// # Related Packages
//
//   - github.com/signadot/jsont/eval - expressions
//   - github.com/signadot/jsont/ir/pointer - pointers and globs
package template
