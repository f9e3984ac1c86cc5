package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v0.3.0"

	if s := String(); !strings.HasPrefix(s, "version: v0.3.0\n") {
		t.Errorf("String() = %q", s)
	}
	if tpl := Template(); !strings.Contains(tpl, "{{.Name}} version v0.3.0") {
		t.Errorf("Template() = %q", tpl)
	}
}
