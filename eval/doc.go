// Package eval compiles and runs the expressions used for computed values
// in templates.
//
// Expressions are github.com/expr-lang/expr programs. They see the
// current node as `_` converted to plain Go values, together with root,
// key, index, path and vars; see Env.
//
// Results convert back through the same plain values, so they are not
// exact copies of input nodes: objects come back with sorted keys and
// numbers that do not fit an int come back as float64, losing digits
// past its precision.
//
// # Related Packages
//
//   - github.com/signadot/jsont/template - template transforms
package eval
