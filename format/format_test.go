package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"j": JSONFormat, "JSON": JSONFormat, "yaml": YAMLFormat, "yml": YAMLFormat} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
	if FromPath("a/b.YML") != YAMLFormat || FromPath("x.json") != JSONFormat || FromPath("noext") != JSONFormat {
		t.Error("FromPath")
	}
}
