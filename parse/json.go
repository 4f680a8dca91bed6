package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/jsont/format"
	"github.com/signadot/jsont/ir"
)

type jsonParser struct {
	d    []byte
	dec  *json.Decoder
	opts *parseOpts
}

func parseJSON(d []byte, o *parseOpts) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	p := &jsonParser{d: d, dec: dec, opts: o}
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, p.errAt(0, errors.New("empty input"))
		}
		return nil, p.wrap(err)
	}
	res, err := p.value(tok, 1)
	if err != nil {
		return nil, err
	}
	off := dec.InputOffset()
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, p.wrap(err)
		}
		return nil, p.errAt(off, errors.New("trailing data after document"))
	}
	return res, nil
}

func (p *jsonParser) value(tok json.Token, depth int) (*ir.Node, error) {
	if depth > p.opts.maxDepth {
		return nil, p.errAt(p.dec.InputOffset(), fmt.Errorf("nesting exceeds %d", p.opts.maxDepth))
	}
	switch x := tok.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromNumber(x.String()), nil
	case json.Delim:
		switch x {
		case '{':
			return p.object(depth)
		case '[':
			return p.array(depth)
		}
	}
	return nil, p.errAt(p.dec.InputOffset(), fmt.Errorf("unexpected token %v", tok))
}

func (p *jsonParser) object(depth int) (*ir.Node, error) {
	res := ir.EmptyObject()
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		if tok == json.Delim('}') {
			return res, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, p.errAt(p.dec.InputOffset(), fmt.Errorf("expected object key, got %v", tok))
		}
		tok, err = p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		val, err := p.value(tok, depth+1)
		if err != nil {
			return nil, err
		}
		res.Put(key, val)
	}
}

func (p *jsonParser) array(depth int) (*ir.Node, error) {
	vals := []*ir.Node{}
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		if tok == json.Delim(']') {
			return ir.FromSlice(vals), nil
		}
		val, err := p.value(tok, depth+1)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
}

func (p *jsonParser) wrap(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return p.errAt(se.Offset, err)
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return p.errAt(p.dec.InputOffset(), err)
}

func (p *jsonParser) errAt(off int64, err error) error {
	line, col := position(p.d, off)
	return &Error{Format: format.JSONFormat, Offset: off, Line: line, Column: col, Err: err}
}
