package jsont

import (
	"errors"
	"fmt"
	"strings"
)

type Mode int

const (
	ModeDiff Mode = iota
	ModeMerge
	ModePatch
	ModeApply
	ModeTransform
)

var ErrBadMode = errors.New("bad mode")

var modeNames = []string{"diff", "merge", "patch", "apply", "transform"}

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), true
		}
	}
	return 0, false
}

// Modes returns all modes.
func Modes() []Mode {
	return []Mode{ModeDiff, ModeMerge, ModePatch, ModeApply, ModeTransform}
}

func (m Mode) String() string {
	d, err := m.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("<err: %d is not a mode>", int(m))
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(d []byte) error {
	pm, ok := ParseMode(string(d))
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadMode, d)
	}
	*m = pm
	return nil
}

// IsDiff reports whether m produces a patch from two documents.
func (m Mode) IsDiff() bool { return m == ModeDiff || m == ModePatch }
