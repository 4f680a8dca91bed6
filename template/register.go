package template

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signadot/jsont/ir"
)

// Symbol is an output instruction keyword.
type Symbol interface {
	// String returns the keyword, including its leading '$'.
	String() string
	// Instance compiles an instruction object led by the keyword.
	Instance(body *ir.Node) (Instr, error)
}

// Instr is a compiled piece of rule output. Exec returns nil when the
// instruction produces nothing, in which case an enclosing object or
// array omits it.
type Instr interface {
	Exec(x *exec, f *frame) (*ir.Node, error)
}

type name string

func (s name) String() string {
	return string(s)
}

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

var ErrSymbolExists = errors.New("symbol exists")

func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

func init() {
	Register(Literal())
	Register(Copy())
	Register(Apply())
	Register(Children())
	Register(Value())
	Register(Each())
	Register(If())
	Register(Flatten())
	Register(Merge())
}

func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// Symbols returns the registered symbols sorted by keyword.
func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].String() < res[j].String() })
	return res
}
