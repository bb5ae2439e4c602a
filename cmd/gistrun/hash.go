package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gistrun/gistrun/internal/config"
	"github.com/gistrun/gistrun/internal/digest"
	"github.com/gistrun/gistrun/internal/gist"
)

func newHashCmd(cfgPath *string) *cobra.Command {
	var (
		token    string
		hashFunc string
	)
	cmd := &cobra.Command{
		Use:   "hash <owner/gist-name>",
		Short: "Compute the digest of a gist's combined file contents",
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
			alg := digest.Algorithm(hashFunc)
			if alg == "" {
				alg = digest.Algorithm(cfg.HashFunc())
			}

			g, err := newClient(cfg, token).Find(cmd.Context(), ref)
			if err != nil {
				return err
			}
			sum, err := digest.Compute(g.Files, alg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub API token (defaults to GH_TOKEN or GITHUB_TOKEN)")
	cmd.Flags().StringVarP(&hashFunc, "hash-func", "f", "", "digest algorithm (sha256, sha512, sha1, md5)")
	return cmd
}
