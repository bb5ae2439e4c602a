package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gistrun/gistrun/internal/digest"
	"github.com/gistrun/gistrun/internal/executor"
	"github.com/gistrun/gistrun/internal/pipeline"
	"github.com/gistrun/gistrun/internal/report"
	"github.com/gistrun/gistrun/internal/resolver"
)

type execParams struct {
	Ref      string   `json:"ref" jsonschema:"gist reference as owner/gist-name, where gist-name matches the gist's description"`
	Commands []string `json:"commands,omitempty" jsonschema:"override commands, one per file in gist order; use \"skip\" to skip a file. Defaults to the extension mapping."`
	Digest   string   `json:"digest,omitempty" jsonschema:"expected digest of the combined file contents; execution is refused on mismatch"`
	HashFunc string   `json:"hash_func,omitempty" jsonschema:"digest algorithm for verification (sha256, sha512, sha1, md5). Default: configured algorithm."`
	DryRun   *bool    `json:"dry_run,omitempty" jsonschema:"report the command per file without executing. Default: true."`
	Timeout  *int     `json:"timeout,omitempty" jsonschema:"per-file timeout in seconds; 0 disables the timeout. Default: configured timeout."`
}

func (h *handler) execHandler(ctx context.Context, req *mcp.CallToolRequest, params execParams) (*mcp.CallToolResult, any, error) {
	ref, err := h.parseRef(params.Ref)
	if err != nil {
		return errorResult(err.Error())
	}

	// Dry run is the MCP default; actually executing is opt-in.
	dryRun := true
	if params.DryRun != nil {
		dryRun = *params.DryRun
	}

	timeout := h.cfg.ExecTimeout()
	if params.Timeout != nil {
		timeout = time.Duration(*params.Timeout) * time.Second
	}

	hashFunc := digest.Algorithm(params.HashFunc)
	if hashFunc == "" {
		hashFunc = digest.Algorithm(h.cfg.HashFunc())
	}

	engine := &pipeline.Engine{
		Fetcher:  h.client,
		Resolver: &resolver.Resolver{Extra: h.cfg.Commands},
		Executor: &executor.Executor{
			Timeout:   timeout,
			MaxOutput: h.cfg.MaxOutputBytes(),
			DryRun:    dryRun,
		},
		Store: h.store,
	}

	// The server has no interactive channel, so a command count mismatch
	// always refuses to run.
	rep, err := engine.Run(ctx, pipeline.Request{
		Ref:       ref,
		Overrides: params.Commands,
		Digest:    params.Digest,
		HashFunc:  hashFunc,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("executing %s: %v", ref, err))
	}

	return textResult(formatExec(rep, dryRun))
}

func formatExec(rep *report.Report, dryRun bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", rep.ID)
	fmt.Fprintf(&b, "Gist: %s\n", rep.Ref)
	if dryRun {
		fmt.Fprintln(&b, "Dry run: no files were executed. Pass dry_run=false to execute.")
	}
	fmt.Fprintln(&b)
	b.WriteString(rep.Render())

	for _, res := range rep.Results {
		if len(res.Stdout) == 0 && len(res.Stderr) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nOutput of %s:\n", res.Command)
		writeIndented(&b, res.Stdout)
		writeIndented(&b, res.Stderr)
		if res.Truncated {
			fmt.Fprintln(&b, "    (output truncated)")
		}
	}
	return b.String()
}

func writeIndented(b *strings.Builder, out []byte) {
	text := strings.TrimRight(string(out), "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
}
