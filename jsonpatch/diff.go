package jsonpatch

import (
	"github.com/signadot/jsont/debug"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/ir/pointer"
	"github.com/signadot/jsont/libdiff"

	"golang.org/x/sync/errgroup"
)

// Diff returns a patch transforming original into target. Equal
// documents give an empty patch.
func Diff(original, target *ir.Node, opts ...DiffOption) Patch {
	o := &diffOpts{}
	for _, opt := range opts {
		opt(o)
	}
	d := &differ{opts: o}
	res := d.diff(nil, original, target, o.parallel > 1)
	if debug.Diff() {
		debug.Logf("diff %s -> %s:\n%s\n", encode.MustString(original), encode.MustString(target), res.String())
	}
	if res == nil {
		res = Patch{}
	}
	return res
}

type differ struct {
	opts *diffOpts
}

// job is a pending diff of one pair of children. Jobs are collected in
// output order so they may be run concurrently and concatenated.
type job struct {
	at       pointer.Pointer
	from, to *ir.Node
	res      Patch
}

func (d *differ) diff(at pointer.Pointer, from, to *ir.Node, par bool) Patch {
	if ir.Equal(from, to) {
		return nil
	}
	if from.Type != to.Type || from.Type.IsLeaf() {
		return Patch{Replace(at, to)}
	}
	var (
		res    Patch
		shared int
	)
	switch from.Type {
	case ir.ObjectType:
		res, shared = d.diffObject(at, from, to, par)
	case ir.ArrayType:
		res, shared = d.diffArray(at, from, to, par)
	}
	if shared == 0 && len(res) > 1 {
		return Patch{Replace(at, to)}
	}
	return res
}

// run executes jobs, concurrently if par is set.
func (d *differ) run(jobs []*job, par bool) {
	if !par || len(jobs) < 2 {
		for _, j := range jobs {
			j.res = d.diff(j.at, j.from, j.to, false)
		}
		return
	}
	g := &errgroup.Group{}
	g.SetLimit(d.opts.parallel)
	for _, j := range jobs {
		g.Go(func() error {
			j.res = d.diff(j.at, j.from, j.to, false)
			return nil
		})
	}
	_ = g.Wait()
}

// shares reports whether from and to have structure in common: they are
// equal or both containers of the same type, so that diffing them does
// not replace them outright.
func shares(from, to *ir.Node) bool {
	return ir.Equal(from, to) || (from.Type == to.Type && !from.Type.IsLeaf())
}

// step is either a ready operation or a job whose result goes there.
type step struct {
	op  *Operation
	job *job
}

func (d *differ) collect(steps []step, par bool) Patch {
	var jobs []*job
	for _, s := range steps {
		if s.job != nil {
			jobs = append(jobs, s.job)
		}
	}
	d.run(jobs, par)
	var res Patch
	for _, s := range steps {
		if s.job != nil {
			res = append(res, s.job.res...)
			continue
		}
		res = append(res, *s.op)
	}
	return res
}

// diffObject walks the keys of from and to aligned on their common
// subsequence: removed keys are removed, added keys added, and keys in
// both are diffed in place.
func (d *differ) diffObject(at pointer.Pointer, from, to *ir.Node, par bool) (Patch, int) {
	var (
		steps  []step
		shared int
	)
	for _, run := range libdiff.AlignKeys(from.Keys(), to.Keys()) {
		for k := 0; k < run.N; k++ {
			switch run.Op {
			case libdiff.Keep:
				key := from.Fields[run.From+k].String
				fv, tv := from.Values[run.From+k], to.Values[run.To+k]
				if shares(fv, tv) {
					shared++
				}
				if ir.Equal(fv, tv) {
					continue
				}
				steps = append(steps, step{job: &job{at: at.Append(key), from: fv, to: tv}})
			case libdiff.Delete:
				key := from.Fields[run.From+k].String
				if to.FieldIndex(key) != -1 {
					continue
				}
				op := Remove(at.Append(key))
				steps = append(steps, step{op: &op})
			case libdiff.Insert:
				key := to.Fields[run.To+k].String
				i := from.FieldIndex(key)
				if i == -1 {
					op := Add(at.Append(key), to.Values[run.To+k])
					steps = append(steps, step{op: &op})
					continue
				}
				// reordered key
				fv, tv := from.Values[i], to.Values[run.To+k]
				if shares(fv, tv) {
					shared++
				}
				if ir.Equal(fv, tv) {
					continue
				}
				steps = append(steps, step{job: &job{at: at.Append(key), from: fv, to: tv}})
			}
		}
	}
	return d.collect(steps, par), shared
}

// diffArray emits operations against the array as it is being patched:
// after each run the first ti elements of the working array equal those
// of to. Within a hunk of deletions and insertions, paired positions are
// diffed in place, surplus deletions are removed from the highest index
// down and surplus insertions added at their final index.
func (d *differ) diffArray(at pointer.Pointer, from, to *ir.Node, par bool) (Patch, int) {
	var runs []libdiff.Run
	if d.opts.byIndex {
		runs = libdiff.Replace(len(from.Values), len(to.Values))
	} else {
		runs = libdiff.AlignNodes(from.Values, to.Values)
	}
	var (
		steps  []step
		shared int
	)
	pair := func(fi, ti int) {
		fv, tv := from.Values[fi], to.Values[ti]
		if shares(fv, tv) {
			shared++
		}
		if ir.Equal(fv, tv) {
			return
		}
		steps = append(steps, step{job: &job{at: at.AppendIndex(ti), from: fv, to: tv}})
	}
	for i := 0; i < len(runs); i++ {
		run := runs[i]
		if run.Op == libdiff.Keep {
			for k := 0; k < run.N; k++ {
				pair(run.From+k, run.To+k)
			}
			continue
		}
		fi, ti := run.From, run.To
		nDel, nIns := 0, 0
		for ; i < len(runs) && runs[i].Op != libdiff.Keep; i++ {
			switch runs[i].Op {
			case libdiff.Delete:
				nDel += runs[i].N
			case libdiff.Insert:
				nIns += runs[i].N
			}
		}
		i--
		n := min(nDel, nIns)
		for k := 0; k < n; k++ {
			pair(fi+k, ti+k)
		}
		for k := nDel - 1; k >= n; k-- {
			op := Remove(at.AppendIndex(ti + k))
			steps = append(steps, step{op: &op})
		}
		for k := n; k < nIns; k++ {
			op := Add(at.AppendIndex(ti+k), to.Values[ti+k])
			steps = append(steps, step{op: &op})
		}
	}
	return d.collect(steps, par), shared
}
