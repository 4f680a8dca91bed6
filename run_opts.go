package jsont

import (
	"github.com/signadot/jsont/jsonpatch"
	"github.com/signadot/jsont/template"
)

type runOpts struct {
	diffOpts     []jsonpatch.DiffOption
	templateOpts []template.Option
	check        bool
}

type RunOption func(*runOpts)

// WithDiffOptions passes options to the stepwise diff.
func WithDiffOptions(opts ...jsonpatch.DiffOption) RunOption {
	return func(o *runOpts) { o.diffOpts = append(o.diffOpts, opts...) }
}

// WithTemplateOptions passes options to template compilation.
func WithTemplateOptions(opts ...template.Option) RunOption {
	return func(o *runOpts) { o.templateOpts = append(o.templateOpts, opts...) }
}

// Check makes the diff modes verify their result by applying it to the
// original with github.com/evanphx/json-patch.
func Check(v bool) RunOption {
	return func(o *runOpts) { o.check = v }
}
