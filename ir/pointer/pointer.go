package pointer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AppendToken is the reference token denoting the position after the last
// element of an array.
const AppendToken = "-"

var ErrSyntax = errors.New("invalid json pointer")

// Pointer is an RFC 6901 JSON Pointer held as unescaped reference tokens.
//
// Pointers are values: Append and friends never modify the receiver's
// backing array in a way visible to other pointers.
type Pointer []string

// Root returns the empty pointer, which refers to the whole document.
func Root() Pointer {
	return nil
}

// Parse parses the string form of a pointer.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: %q does not start with '/'", ErrSyntax, s)
	}
	parts := strings.Split(s[1:], "/")
	res := make(Pointer, len(parts))
	for i, part := range parts {
		tok, err := unescape(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrSyntax, s, err)
		}
		res[i] = tok
	}
	return res, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Pointer {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func unescape(tok string) (string, error) {
	if strings.IndexByte(tok, '~') == -1 {
		return tok, nil
	}
	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(tok) {
			return "", errors.New("dangling '~'")
		}
		switch tok[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape '~%c'", tok[i+1])
		}
		i++
	}
	return b.String(), nil
}

// Escape escapes a single reference token.
func Escape(tok string) string {
	if strings.IndexAny(tok, "~/") == -1 {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

func (p Pointer) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pointer) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = pp
	return nil
}

// IsRoot reports whether p refers to the whole document.
func (p Pointer) IsRoot() bool {
	return len(p) == 0
}

// Append returns a new pointer with tok added.
func (p Pointer) Append(tok ...string) Pointer {
	res := make(Pointer, len(p), len(p)+len(tok))
	copy(res, p)
	return append(res, tok...)
}

// AppendIndex returns a new pointer with the array index i added.
func (p Pointer) AppendIndex(i int) Pointer {
	return p.Append(strconv.Itoa(i))
}

// Concat returns p followed by the tokens of q.
func (p Pointer) Concat(q Pointer) Pointer {
	return p.Append(q...)
}

// Parent returns p without its last token. The parent of the root is the
// root.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return nil
	}
	return p[: len(p)-1 : len(p)-1]
}

// Last returns the last token, or "" for the root.
func (p Pointer) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// IsAppend reports whether the last token is the append marker.
func (p Pointer) IsAppend() bool {
	return len(p) != 0 && p[len(p)-1] == AppendToken
}

func (p Pointer) Equal(q Pointer) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether p is a prefix of q, including p == q.
func (p Pointer) IsPrefixOf(q Pointer) bool {
	if len(p) > len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsStrictPrefixOf reports whether p is a proper prefix of q.
func (p Pointer) IsStrictPrefixOf(q Pointer) bool {
	return len(p) < len(q) && p.IsPrefixOf(q)
}

// Index interprets tok as an array index. Only canonical decimal forms
// are accepted: no sign, no leading zeros.
func Index(tok string) (int, bool) {
	if tok == "" || len(tok) > 1 && tok[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return i, true
}
