package parse

import (
	"fmt"

	"github.com/signadot/jsont/format"
	"github.com/signadot/jsont/ir"
)

var ErrParse = ir.ErrParse

// Error describes malformed input. Offset is a byte offset into the
// input; Line and Column are 1 based and 0 when unknown.
type Error struct {
	Format format.Format
	Offset int64
	Line   int
	Column int
	Err    error
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s parse error: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%s parse error at line %d, column %d (offset %d): %v",
		e.Format, e.Line, e.Column, e.Offset, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// position converts a byte offset into a line and column.
func position(d []byte, off int64) (line, col int) {
	line, col = 1, 1
	if off > int64(len(d)) {
		off = int64(len(d))
	}
	for _, c := range d[:off] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
