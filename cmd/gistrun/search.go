package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gistrun/gistrun/internal/config"
	"github.com/gistrun/gistrun/internal/gist"
)

func newSearchCmd(cfgPath *string) *cobra.Command {
	var (
		query string
		owner string
		token string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search public gists or list a user's gists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (query == "") == (owner == "") {
				return fmt.Errorf("provide exactly one of --search or --list")
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			client := newClient(cfg, token)

			var summaries []gist.Summary
			if query != "" {
				summaries, err = client.Search(cmd.Context(), query)
			} else {
				if err := gist.CheckOwner(owner); err != nil {
					return err
				}
				summaries, err = client.List(cmd.Context(), owner)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No gists found.")
				return nil
			}
			for _, s := range summaries {
				fmt.Fprintf(out, "Gist ID: %s, Description: %s\n", s.ID, s.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "free-text query against public gists")
	cmd.Flags().StringVarP(&owner, "list", "l", "", "GitHub username whose gists to list")
	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub API token (defaults to GH_TOKEN or GITHUB_TOKEN)")
	return cmd
}
