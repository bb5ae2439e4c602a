// Package resolver assigns an interpreter command to every gist file,
// either through the extension mapping table or an explicit override list.
package resolver

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gistrun/gistrun/internal/gist"
)

// Skip is the sentinel command meaning "do not execute this file".
const Skip = "skip"

// IsSkip reports whether command is the skip sentinel, ignoring case.
func IsSkip(command string) bool {
	return strings.EqualFold(command, Skip)
}

// defaultCommands maps a file extension (with the leading dot, matched
// exactly) to its interpreter invocation. Entries mapped to Skip are
// formats with nothing to execute.
var defaultCommands = map[string]string{
	".asm":    "nasm",
	".awk":    "awk -f",
	".bat":    "cmd /c",
	".c":      "gcc",
	".clj":    "clojure",
	".cpp":    "g++",
	".cs":     "dotnet script",
	".css":    Skip,
	".dart":   "dart",
	".erl":    "escript",
	".fsx":    "dotnet fsi",
	".go":     "go run",
	".groovy": "groovy",
	".h":      Skip,
	".hpp":    Skip,
	".hs":     "runhaskell",
	".html":   Skip,
	".java":   "javac",
	".js":     "node",
	".json":   Skip,
	".jsx":    "node",
	".kt":     "kotlin",
	".less":   Skip,
	".lua":    "lua",
	".m":      "octave",
	".md":     Skip,
	".ml":     "ocaml",
	".nim":    "nim compile --run",
	".p":      "prolog",
	".pas":    "fpc",
	".php":    "php",
	".pl":     "perl",
	".ps1":    "powershell -File",
	".py":     "python",
	".pyc":    "python",
	".pyx":    "cython",
	".r":      "Rscript",
	".rb":     "ruby",
	".rs":     "rustc",
	".rst":    Skip,
	".sass":   Skip,
	".scala":  "scala",
	".scss":   Skip,
	".sh":     "bash",
	".sml":    "sml",
	".sql":    Skip,
	".swift":  "swift",
	".tcl":    "tclsh",
	".tex":    Skip,
	".ts":     "ts-node",
	".tsx":    "ts-node",
	".txt":    Skip,
	".vb":     "vbnc",
	".vbs":    "cscript //Nologo",
	".vue":    Skip,
	".xml":    Skip,
	".yaml":   Skip,
	".yml":    Skip,
}

// DefaultCommand resolves a filename through the default table. The
// second return is false when the extension is unknown; the command is
// then Skip.
func DefaultCommand(filename string) (string, bool) {
	cmd, ok := defaultCommands[path.Ext(filename)]
	if !ok {
		return Skip, false
	}
	return cmd, true
}

// Binary returns the executable name of an invocation like "go run".
func Binary(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Mapping is one extension table entry.
type Mapping struct {
	Ext     string
	Command string
}

// Mappings returns the default table merged with extra, sorted by
// extension. Extra entries replace defaults with the same extension.
func Mappings(extra map[string]string) []Mapping {
	merged := make(map[string]string, len(defaultCommands)+len(extra))
	for ext, cmd := range defaultCommands {
		merged[ext] = cmd
	}
	for ext, cmd := range extra {
		merged[ext] = cmd
	}
	out := make([]Mapping, 0, len(merged))
	for ext, cmd := range merged {
		out = append(out, Mapping{Ext: ext, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ext < out[j].Ext })
	return out
}

// Step pairs one gist file with the command that will run it.
type Step struct {
	File    gist.File
	Command string
	// Unknown is set when the file's extension has no table entry and no
	// override; the command is then Skip.
	Unknown bool
}

// Plan is the ordered command assignment for one run, one step per file.
type Plan []Step

// CountMismatchError reports an override list whose length differs from
// the file count. It is recoverable: the caller decides whether to
// proceed with the overrides that exist.
type CountMismatchError struct {
	Commands int
	Files    int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("number of run commands (%d) does not match the number of files (%d)", e.Commands, e.Files)
}

// Resolver builds command plans. Extra extends or overrides the default
// table, keyed by extension with the leading dot.
type Resolver struct {
	Extra map[string]string
}

// Resolve assigns a command to every file, preserving file order.
// With no overrides every file resolves through the mapping table;
// unknown extensions resolve to Skip and are flagged. With overrides the
// assignment is positional and the override count must equal the file
// count, otherwise a *CountMismatchError is returned rather than a
// silently truncated or padded plan.
func (r *Resolver) Resolve(files []gist.File, overrides []string) (Plan, error) {
	if len(overrides) == 0 {
		plan := make(Plan, len(files))
		for i, f := range files {
			cmd, known := r.lookup(f.Name)
			plan[i] = Step{File: f, Command: cmd, Unknown: !known}
		}
		return plan, nil
	}
	if len(overrides) != len(files) {
		return nil, &CountMismatchError{Commands: len(overrides), Files: len(files)}
	}
	plan := make(Plan, len(files))
	for i, f := range files {
		plan[i] = Step{File: f, Command: overrides[i]}
	}
	return plan, nil
}

// ResolvePartial builds a plan after the caller has agreed to proceed
// with a mismatched override list: overrides apply positionally, extra
// overrides are dropped, and files beyond the list are skipped.
func (r *Resolver) ResolvePartial(files []gist.File, overrides []string) Plan {
	plan := make(Plan, len(files))
	for i, f := range files {
		cmd := Skip
		if i < len(overrides) {
			cmd = overrides[i]
		}
		plan[i] = Step{File: f, Command: cmd}
	}
	return plan
}

func (r *Resolver) lookup(filename string) (string, bool) {
	ext := path.Ext(filename)
	if cmd, ok := r.Extra[ext]; ok {
		return cmd, true
	}
	if cmd, ok := defaultCommands[ext]; ok {
		return cmd, true
	}
	return Skip, false
}
