// Package templates holds the bundled transform templates, addressable by
// name.
//
// merge-arrays concatenates an array of arrays, merge-objects deep merges
// an array of objects and merge-serialization combines serialization
// configuration documents given either as arrays of type entries or as
// objects with types, lambdaCapturingTypes and proxies members.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/signadot/jsont/ir"
	"github.com/signadot/jsont/parse"
	"github.com/signadot/jsont/template"
)

//go:embed data/*.json
var data embed.FS

var ErrNotFound = errors.New("no such bundled template")

const suffix = ".json"

// Names returns the names of the bundled templates, sorted.
func Names() []string {
	ents, err := fs.ReadDir(data, "data")
	if err != nil {
		panic(err)
	}
	res := make([]string, 0, len(ents))
	for _, ent := range ents {
		res = append(res, strings.TrimSuffix(ent.Name(), suffix))
	}
	slices.Sort(res)
	return res
}

// Source returns the template document text of name.
func Source(name string) ([]byte, error) {
	d, err := data.ReadFile(path.Join("data", name+suffix))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d, nil
}

// Lookup parses the bundled template name.
func Lookup(name string) (*ir.Node, error) {
	d, err := Source(name)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d)
}

// Compile looks up and compiles the bundled template name.
func Compile(name string, opts ...template.Option) (*template.Template, error) {
	doc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return template.Compile(doc, opts...)
}
