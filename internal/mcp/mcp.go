// Package mcp provides the gistrun MCP server, registering all tools
// and publishing model instructions.
package mcp

import (
	_ "embed"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gistrun/gistrun/internal/config"
	"github.com/gistrun/gistrun/internal/gist"
	"github.com/gistrun/gistrun/internal/report"
	"github.com/gistrun/gistrun/internal/version"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	cfg    *config.Config
	client *gist.Client
	store  report.Store
}

// NewServer creates an MCP server with all gistrun tools registered.
func NewServer(cfg *config.Config, client *gist.Client, store report.Store) *mcp.Server {
	h := &handler{
		cfg:    cfg,
		client: client,
		store:  store,
	}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "gistrun", Version: version.Current()}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "gist_exec",
		Description: `Execute the files of a GitHub gist, each through the interpreter mapped to its extension.

The gist is addressed as owner/gist-name, where gist-name matches the gist's description.
Defaults to a dry run that only reports which command would run for each file; pass
dry_run=false to actually execute. Results are stored for retrieval via gist_report.`,
	}, h.execHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "gist_hash",
		Description: `Compute the digest of a gist's combined file contents.

Use this to pin a gist before executing it: pass the returned digest to gist_exec, which
then refuses to run if the contents changed.`,
	}, h.hashHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "gist_print",
		Description: "Fetch a gist and return each file's name and content without executing anything.",
	}, h.printHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "gist_search",
		Description: `Search public gists by query, or list all gists of one owner.

Provide exactly one of query or owner. Returns gist IDs and descriptions.`,
	}, h.searchHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "gist_report",
		Description: "Retrieve the stored execution report of a previous gist_exec run by its run ID.",
	}, h.reportHandler)

	return s
}

// parseRef validates and parses an owner/gist-name tool argument.
func (h *handler) parseRef(raw string) (gist.Reference, error) {
	if raw == "" {
		return gist.Reference{}, fmt.Errorf("ref is required")
	}
	return gist.ParseReference(raw)
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
