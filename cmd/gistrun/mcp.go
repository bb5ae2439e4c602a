package main

import (
	"context"
	"fmt"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/gistrun/gistrun/internal/config"
	gistmcp "github.com/gistrun/gistrun/internal/mcp"
	"github.com/gistrun/gistrun/internal/report"
)

// storedRuns bounds how many past execution reports the MCP server keeps.
const storedRuns = 32

func newMCPCmd(cfgPath *string) *cobra.Command {
	var (
		httpAddr     string
		instructions bool
		token        string
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if instructions {
				fmt.Fprint(cmd.OutOrStdout(), gistmcp.Instructions)
				return nil
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			store := report.NewLRUStore(storedRuns)
			server := gistmcp.NewServer(cfg, newClient(cfg, token), store)

			if httpAddr != "" {
				return serveHTTP(cmd.Context(), server, httpAddr)
			}
			return server.Run(cmd.Context(), &mcpsdk.StdioTransport{})
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "serve MCP over HTTP on address (e.g. :9090) instead of stdio")
	cmd.Flags().BoolVar(&instructions, "instructions", false, "print model instructions and exit")
	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub API token (defaults to GH_TOKEN or GITHUB_TOKEN)")
	return cmd
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	pslog.Ctx(ctx).Info("mcp server listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
