// Command gistrun fetches GitHub gists and executes their files through
// the interpreters mapped to their extensions.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/gistrun/gistrun/internal/config"
	"github.com/gistrun/gistrun/internal/gist"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("gistrun command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "gistrun",
		Short:         "Fetch and execute GitHub gists",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a gistrun config file")

	root.AddCommand(newExecCmd(&cfgPath))
	root.AddCommand(newHashCmd(&cfgPath))
	root.AddCommand(newPrintCmd(&cfgPath))
	root.AddCommand(newSearchCmd(&cfgPath))
	root.AddCommand(newDoctorCmd(&cfgPath))
	root.AddCommand(newMCPCmd(&cfgPath))
	root.AddCommand(newVersionCmd())

	return root
}

// newClient builds the gist API client from the config, falling back to
// the GH_TOKEN / GITHUB_TOKEN environment variables when no token flag
// was given.
func newClient(cfg *config.Config, token string) *gist.Client {
	if token == "" {
		token = gist.TokenFromEnv()
	}
	c := gist.NewClient(cfg.APIBaseURL, token, cfg.RequestTimeout())
	if cfg.FetchLimit > 0 {
		c.PerPage = cfg.FetchLimit
	}
	return c
}
