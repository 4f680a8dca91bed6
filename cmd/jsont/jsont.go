package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/signadot/jsont"
	"github.com/signadot/jsont/encode"
	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/parse"

	"github.com/scott-cotton/cli"
)

func jsontMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logLevel.Set(slog.LevelInfo)
	}
	err = run(cfg, cc.In, cc.Out, args)
	if errors.Is(err, cli.ErrUsage) {
		cfg.Main.Usage(cc, err)
		os.Exit(cfg.Main.Exit(cc, err))
	}
	return err
}

// run performs the invocation described by args, reading "-" operands
// from in and writing the result to out.
func run(cfg *MainConfig, in io.Reader, out io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: expected a mode or a template", cli.ErrUsage)
	}
	mode, ok := jsont.ParseMode(args[0])
	if ok {
		args = args[1:]
	} else {
		mode = jsont.ModeTransform
		theLog.Info("taking first argument as a template", "template", args[0])
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: %s takes 2 operands, got %d", cli.ErrUsage, mode, len(args))
	}
	if args[0] == stdinPath && args[1] == stdinPath {
		return fmt.Errorf("%w: at most one operand may be read from stdin", cli.ErrUsage)
	}
	src := &sources{cfg: cfg, in: in}
	op1, err := src.load(args[0], mode == jsont.ModeTransform)
	if err != nil {
		return err
	}
	op2, err := src.load(args[1], false)
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := jsont.Run(mode, op1, op2, cfg.runOpts()...)
	if err != nil {
		return fmt.Errorf("%s: %w", mode, err)
	}
	theLog.Info("done", "mode", mode, "elapsed", time.Since(start))
	return encode.Encode(res, out, cfg.encOpts(out)...)
}

// varFunc records a name=value template variable. Dotted names set
// members of nested objects.
func varFunc(vars map[string]*ir.Node, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: argument %q expected name=val", cli.ErrUsage, a)
	}
	v, err := parse.Parse([]byte(val), parse.ParseYAML())
	if err != nil {
		return fmt.Errorf("%w: %q: %w", cli.ErrUsage, a, err)
	}
	parts := strings.Split(key, ".")
	if len(parts) == 1 {
		vars[key] = v
		return nil
	}
	cur := vars[parts[0]]
	if cur == nil {
		cur = ir.EmptyObject()
		vars[parts[0]] = cur
	}
	for i, part := range parts[1:] {
		if cur.Type != ir.ObjectType {
			return fmt.Errorf("%w: cannot set %s, %s is a %s", cli.ErrUsage, key, strings.Join(parts[:i+1], "."), cur.Type)
		}
		if i == len(parts)-2 {
			cur.Put(part, v)
			break
		}
		next := ir.Get(cur, part)
		if next == nil {
			next = ir.EmptyObject()
			cur.Put(part, next)
		}
		cur = next
	}
	return nil
}
