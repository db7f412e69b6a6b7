package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	v, c := Version, Commit
	defer func() { Version, Commit = v, c }()

	Version, Commit = "v0.3.0", "1a2b3c4d5e6f"
	if got := Short(); got != "v0.3.0 (1a2b3c4)" {
		t.Errorf("Short() = %q", got)
	}
	Commit = "none"
	if got := Short(); got != "v0.3.0 (none)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} ") {
		t.Errorf("Template() = %q", Template())
	}
}
