package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gistrun/gistrun/internal/gist"
)

type searchParams struct {
	Query string `json:"query,omitempty" jsonschema:"free-text query against public gists"`
	Owner string `json:"owner,omitempty" jsonschema:"GitHub username whose gists to list"`
}

func (h *handler) searchHandler(ctx context.Context, req *mcp.CallToolRequest, params searchParams) (*mcp.CallToolResult, any, error) {
	if (params.Query == "") == (params.Owner == "") {
		return errorResult("provide exactly one of query or owner")
	}

	var (
		summaries []gist.Summary
		err       error
	)
	if params.Query != "" {
		summaries, err = h.client.Search(ctx, params.Query)
	} else {
		if err := gist.CheckOwner(params.Owner); err != nil {
			return errorResult(err.Error())
		}
		summaries, err = h.client.List(ctx, params.Owner)
	}
	if err != nil {
		return errorResult(fmt.Sprintf("searching gists: %v", err))
	}
	if len(summaries) == 0 {
		return textResult("No gists found.")
	}

	var b strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&b, "Gist ID: %s, Description: %s\n", s.ID, s.Description)
	}
	return textResult(b.String())
}
