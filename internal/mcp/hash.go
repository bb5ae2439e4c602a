package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gistrun/gistrun/internal/digest"
)

type hashParams struct {
	Ref      string `json:"ref" jsonschema:"gist reference as owner/gist-name"`
	HashFunc string `json:"hash_func,omitempty" jsonschema:"digest algorithm (sha256, sha512, sha1, md5). Default: configured algorithm."`
}

func (h *handler) hashHandler(ctx context.Context, req *mcp.CallToolRequest, params hashParams) (*mcp.CallToolResult, any, error) {
	ref, err := h.parseRef(params.Ref)
	if err != nil {
		return errorResult(err.Error())
	}

	alg := digest.Algorithm(params.HashFunc)
	if alg == "" {
		alg = digest.Algorithm(h.cfg.HashFunc())
	}

	g, err := h.client.Find(ctx, ref)
	if err != nil {
		return errorResult(fmt.Sprintf("fetching %s: %v", ref, err))
	}
	sum, err := digest.Compute(g.Files, alg)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(fmt.Sprintf("%s digest of %s (%d files):\n%s", alg, ref, len(g.Files), sum))
}
