package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/parse"
	"github.com/signadot/jsont/templates"
)

const stdinPath = "-"

type sources struct {
	cfg *MainConfig
	in  io.Reader
}

// load reads an operand. Templates which are neither stdin nor an
// existing file are looked up among the bundled templates.
func (s *sources) load(path string, isTemplate bool) (*ir.Node, error) {
	if path == stdinPath {
		theLog.Info("reading stdin")
		return s.parse(s.in, path)
	}
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		theLog.Info("reading file", "path", path)
		return s.parse(f, path)
	}
	if !isTemplate || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	node, terr := templates.Lookup(path)
	if terr != nil {
		return nil, fmt.Errorf("%w: %q is not a file nor one of %s", templates.ErrNotFound, path, strings.Join(templates.Names(), ", "))
	}
	theLog.Info("using bundled template", "name", path)
	return node, nil
}

func (s *sources) parse(r io.Reader, path string) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	node, err := parse.Parse(d, s.cfg.parseOpts(path)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return node, nil
}
