package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/jsont"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/format"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/jsonpatch"
	"github.com/signadot/jsont/parse"
	"github.com/signadot/jsont/template"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Indent   int  `cli:"name=indent desc='output indentation, 0 for compact output'"`
	Sort     bool `cli:"name=sort desc='sort object keys in output'"`
	Color    bool `cli:"name=color desc='encode with color'"`
	Verbose  bool `cli:"name=v desc='log what is done to stderr'"`
	Check    bool `cli:"name=check desc='verify diffs by applying them independently'"`
	ByIndex  bool `cli:"name=byindex desc='diff arrays position by position'"`
	Parallel int  `cli:"name=parallel desc='diff top level members with this many workers'"`

	InFormat, OutFormat *format.Format

	Vars map[string]*ir.Node

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// parseOpts gives the options to read the operand at path, using its
// suffix unless an input format was given.
func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	fmat := format.JSONFormat
	if path != stdinPath {
		fmat = format.FromPath(path)
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{parse.ParseFormat(fmat)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := format.JSONFormat
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeIndent(cfg.Indent),
		encode.EncodeSortKeys(cfg.Sort),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			colorsSet = opt.Value != nil
			break
		}
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) runOpts() []jsont.RunOption {
	var diffOpts []jsonpatch.DiffOption
	if cfg.ByIndex {
		diffOpts = append(diffOpts, jsonpatch.DiffArraysByIndex())
	}
	if cfg.Parallel > 1 {
		diffOpts = append(diffOpts, jsonpatch.DiffParallel(cfg.Parallel))
	}
	return []jsont.RunOption{
		jsont.Check(cfg.Check),
		jsont.WithDiffOptions(diffOpts...),
		jsont.WithTemplateOptions(template.WithVars(cfg.Vars)),
	}
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
