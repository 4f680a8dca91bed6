package main

import (
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/templates"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Indent: 4, Vars: map[string]*ir.Node{}}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "D",
			Description: "set a template variable, the value is read as yaml",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(varOptTypeFunc(cfg.Vars)), "(name=val)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "jsont").
		WithSynopsis("jsont [opts] <diff|merge|patch|apply|transform|template> <operand1> <operand2>").
		WithDescription("jsont diffs, patches and transforms json documents.\n\n" +
			"  diff      <original> <target>   merge patch (RFC 7396)\n" +
			"  merge     <patch> <document>    apply a merge patch\n" +
			"  patch     <original> <target>   json patch (RFC 6902)\n" +
			"  apply     <patch> <document>    apply a json patch\n" +
			"  transform <template> <input>    apply a template\n\n" +
			"A first argument which is not a mode is taken as a template.\n" +
			"Operands are files, - for stdin, or for templates one of the\n" +
			"bundled templates: " + strings.Join(templates.Names(), ", ") + ".").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsontMain(cfg, cc, args)
		})
}

func varOptTypeFunc(vars map[string]*ir.Node) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := varFunc(vars, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}
