package jsonpatch

type diffOpts struct {
	byIndex  bool
	parallel int
}

type DiffOption func(*diffOpts)

// DiffArraysByIndex compares arrays position by position instead of
// aligning their elements.
func DiffArraysByIndex() DiffOption {
	return func(o *diffOpts) { o.byIndex = true }
}

// DiffParallel diffs the members of the top level container with up to n
// goroutines. The resulting patch is the same as without the option.
func DiffParallel(n int) DiffOption {
	return func(o *diffOpts) { o.parallel = n }
}
