package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gistrun/gistrun/internal/config"
	"github.com/gistrun/gistrun/internal/gist"
)

func newPrintCmd(cfgPath *string) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "print <owner/gist-name>",
		Short: "Print each file of a gist without executing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := gist.ParseReference(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			g, err := newClient(cfg, token).Find(cmd.Context(), ref)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, f := range g.Files {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "File: %s\n", f.Name)
				out.Write(f.Content)
				if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub API token (defaults to GH_TOKEN or GITHUB_TOKEN)")
	return cmd
}
