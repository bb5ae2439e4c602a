package resolver

import (
	"errors"
	"testing"

	"github.com/gistrun/gistrun/internal/gist"
)

func files(names ...string) []gist.File {
	out := make([]gist.File, 0, len(names))
	for _, n := range names {
		out = append(out, gist.File{Name: n, Content: []byte("x")})
	}
	return out
}

func TestResolve_DefaultMapping(t *testing.T) {
	r := &Resolver{}
	plan, err := r.Resolve(files("demo.py", "run.sh", "main.go"), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"python", "bash", "go run"}
	for i, cmd := range want {
		if plan[i].Command != cmd {
			t.Errorf("plan[%d].Command = %q, want %q", i, plan[i].Command, cmd)
		}
		if plan[i].Unknown {
			t.Errorf("plan[%d].Unknown = true for a mapped extension", i)
		}
	}
}

func TestResolve_SkipEntries(t *testing.T) {
	r := &Resolver{}
	plan, err := r.Resolve(files("notes.md", "style.css"), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for i, step := range plan {
		if !IsSkip(step.Command) {
			t.Errorf("plan[%d].Command = %q, want skip", i, step.Command)
		}
		if step.Unknown {
			t.Errorf("plan[%d].Unknown = true for a mapped skip extension", i)
		}
	}
}

func TestResolve_UnknownExtension(t *testing.T) {
	r := &Resolver{}
	plan, err := r.Resolve(files("weird.zzz"), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !IsSkip(plan[0].Command) || !plan[0].Unknown {
		t.Errorf("plan[0] = %+v, want skipped and flagged unknown", plan[0])
	}
}

func TestResolve_ExtensionIsCaseSensitive(t *testing.T) {
	r := &Resolver{}
	plan, err := r.Resolve(files("DEMO.PY"), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !plan[0].Unknown {
		t.Errorf("plan[0] = %+v, want .PY treated as unknown", plan[0])
	}
}

func TestResolve_ExtraOverridesTable(t *testing.T) {
	r := &Resolver{Extra: map[string]string{".py": "python3", ".zig": "zig run"}}
	plan, err := r.Resolve(files("demo.py", "main.zig"), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if plan[0].Command != "python3" {
		t.Errorf("plan[0].Command = %q, want python3", plan[0].Command)
	}
	if plan[1].Command != "zig run" || plan[1].Unknown {
		t.Errorf("plan[1] = %+v, want zig run via Extra", plan[1])
	}
}

func TestResolve_PositionalOverrides(t *testing.T) {
	r := &Resolver{}
	plan, err := r.Resolve(files("demo.py", "notes.md"), []string{"python3", "cat"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Overrides win positionally; the table is never consulted.
	if plan[0].Command != "python3" || plan[1].Command != "cat" {
		t.Errorf("plan = %+v, want positional overrides", plan)
	}
}

func TestResolve_CountMismatch(t *testing.T) {
	r := &Resolver{}
	plan, err := r.Resolve(files("a.py", "b.py", "c.py"), []string{"python"})
	if plan != nil {
		t.Errorf("plan = %+v, want nil on mismatch (no truncation or padding)", plan)
	}
	var cme *CountMismatchError
	if !errors.As(err, &cme) {
		t.Fatalf("error = %v, want *CountMismatchError", err)
	}
	if cme.Commands != 1 || cme.Files != 3 {
		t.Errorf("CountMismatchError = %+v, want {1 3}", cme)
	}
}

func TestResolvePartial(t *testing.T) {
	r := &Resolver{}
	plan := r.ResolvePartial(files("a.py", "b.py", "c.py"), []string{"python"})
	if len(plan) != 3 {
		t.Fatalf("len(plan) = %d, want 3", len(plan))
	}
	if plan[0].Command != "python" {
		t.Errorf("plan[0].Command = %q, want python", plan[0].Command)
	}
	for i := 1; i < 3; i++ {
		if !IsSkip(plan[i].Command) {
			t.Errorf("plan[%d].Command = %q, want skip", i, plan[i].Command)
		}
	}

	// Extra overrides beyond the file count are dropped.
	plan = r.ResolvePartial(files("a.py"), []string{"python", "node"})
	if len(plan) != 1 || plan[0].Command != "python" {
		t.Errorf("plan = %+v, want single python step", plan)
	}
}

func TestIsSkip(t *testing.T) {
	for _, s := range []string{"skip", "Skip", "SKIP"} {
		if !IsSkip(s) {
			t.Errorf("IsSkip(%q) = false", s)
		}
	}
	if IsSkip("python") {
		t.Error("IsSkip(python) = true")
	}
}

func TestDefaultCommand(t *testing.T) {
	cmd, ok := DefaultCommand("demo.py")
	if !ok || cmd != "python" {
		t.Errorf("DefaultCommand(demo.py) = %q, %v", cmd, ok)
	}
	cmd, ok = DefaultCommand("file.unknown")
	if ok || !IsSkip(cmd) {
		t.Errorf("DefaultCommand(file.unknown) = %q, %v, want skip, false", cmd, ok)
	}
}

func TestBinary(t *testing.T) {
	if got := Binary("go run"); got != "go" {
		t.Errorf("Binary(go run) = %q, want go", got)
	}
	if got := Binary("python"); got != "python" {
		t.Errorf("Binary(python) = %q, want python", got)
	}
	if got := Binary("  "); got != "" {
		t.Errorf("Binary(blank) = %q, want empty", got)
	}
}

func TestMappings_MergedAndSorted(t *testing.T) {
	maps := Mappings(map[string]string{".py": "python3"})
	var sawPy bool
	for i := 1; i < len(maps); i++ {
		if maps[i-1].Ext >= maps[i].Ext {
			t.Fatalf("mappings not sorted: %q before %q", maps[i-1].Ext, maps[i].Ext)
		}
	}
	for _, m := range maps {
		if m.Ext == ".py" {
			sawPy = true
			if m.Command != "python3" {
				t.Errorf(".py = %q, want extra to win", m.Command)
			}
		}
	}
	if !sawPy {
		t.Error("no .py mapping present")
	}
}
