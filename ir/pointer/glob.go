package pointer

import "path"

// Glob matches pointers against patterns written in pointer syntax where
// a token "*" matches any single token, "**" matches any number of
// tokens (including none) and other tokens are path.Match patterns.
type Glob struct {
	src  string
	toks []string
}

// ParseGlob parses and validates a glob.
func ParseGlob(s string) (*Glob, error) {
	p, err := Parse(s)
	if err != nil {
		return nil, err
	}
	for _, tok := range p {
		if tok == "**" {
			continue
		}
		if _, err := path.Match(tok, ""); err != nil {
			return nil, err
		}
	}
	return &Glob{src: s, toks: p}, nil
}

func (g *Glob) String() string {
	return g.src
}

// Match reports whether p matches g.
func (g *Glob) Match(p Pointer) bool {
	return globMatch(g.toks, p)
}

func globMatch(pat []string, p Pointer) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			rest := pat[1:]
			for i := 0; i <= len(p); i++ {
				if globMatch(rest, p[i:]) {
					return true
				}
			}
			return false
		}
		if len(p) == 0 {
			return false
		}
		if pat[0] != "*" {
			if ok, _ := path.Match(pat[0], p[0]); !ok {
				return false
			}
		}
		pat = pat[1:]
		p = p[1:]
	}
	return len(p) == 0
}
