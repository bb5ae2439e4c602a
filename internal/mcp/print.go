package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type printParams struct {
	Ref string `json:"ref" jsonschema:"gist reference as owner/gist-name"`
}

func (h *handler) printHandler(ctx context.Context, req *mcp.CallToolRequest, params printParams) (*mcp.CallToolResult, any, error) {
	ref, err := h.parseRef(params.Ref)
	if err != nil {
		return errorResult(err.Error())
	}

	g, err := h.client.Find(ctx, ref)
	if err != nil {
		return errorResult(fmt.Sprintf("fetching %s: %v", ref, err))
	}

	var b strings.Builder
	for i, f := range g.Files {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "File: %s\n", f.Name)
		b.Write(f.Content)
		if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
			b.WriteString("\n")
		}
	}
	return textResult(b.String())
}
