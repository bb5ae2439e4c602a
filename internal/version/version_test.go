package version

import (
	"strings"
	"testing"
)

func TestCurrent_NotEmpty(t *testing.T) {
	if Current() == "" {
		t.Error("Current returned an empty version")
	}
}

func TestCurrent_LdflagsWins(t *testing.T) {
	old := buildVersion
	defer func() { buildVersion = old }()

	buildVersion = " v1.2.3 "
	if got := Current(); got != "v1.2.3" {
		t.Errorf("Current = %q, want v1.2.3", got)
	}
}

func TestModule_NotEmpty(t *testing.T) {
	if m := Module(); m == "" || !strings.Contains(m, "/") {
		t.Errorf("Module = %q, want a module path", m)
	}
}
