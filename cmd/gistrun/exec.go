package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gistrun/gistrun/internal/config"
	"github.com/gistrun/gistrun/internal/digest"
	"github.com/gistrun/gistrun/internal/executor"
	"github.com/gistrun/gistrun/internal/gist"
	"github.com/gistrun/gistrun/internal/pipeline"
	"github.com/gistrun/gistrun/internal/report"
	"github.com/gistrun/gistrun/internal/resolver"
)

func newExecCmd(cfgPath *string) *cobra.Command {
	var (
		commands   []string
		dryRun     bool
		yes        bool
		token      string
		timeout    int
		showReport bool
		expected   string
		hashFunc   string
	)
	cmd := &cobra.Command{
		Use:   "exec <owner/gist-name>",
		Short: "Execute each file of a gist with its mapped interpreter",
		Long: `Exec fetches the gist whose description matches gist-name among the
owner's gists and executes each file with the command mapped to its
extension. Override the mapping with one --run per file, in gist order;
the value "skip" skips a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := gist.ParseReference(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			execTimeout := cfg.ExecTimeout()
			if cmd.Flags().Changed("timeout") {
				execTimeout = time.Duration(timeout) * time.Second
			}
			alg := digest.Algorithm(hashFunc)
			if alg == "" {
				alg = digest.Algorithm(cfg.HashFunc())
			}

			engine := &pipeline.Engine{
				Fetcher:  newClient(cfg, token),
				Resolver: &resolver.Resolver{Extra: cfg.Commands},
				Executor: &executor.Executor{
					Timeout:   execTimeout,
					MaxOutput: cfg.MaxOutputBytes(),
					DryRun:    dryRun,
				},
				Store: report.NewLRUStore(1),
			}

			req := pipeline.Request{
				Ref:       ref,
				Overrides: commands,
				Digest:    expected,
				HashFunc:  alg,
			}
			if yes {
				req.OnCountMismatch = func(*resolver.CountMismatchError) bool { return true }
			} else {
				// One reader for the whole invocation: a run can prompt
				// twice (count mismatch, then plan confirmation), and a
				// fresh bufio.Reader per prompt would lose input the
				// first one buffered past its line.
				in := bufio.NewReader(cmd.InOrStdin())
				req.OnCountMismatch = func(m *resolver.CountMismatchError) bool {
					return confirm(cmd, in, m.Error()+". Proceed with the matched files?")
				}
				if !dryRun {
					req.Confirm = func(plan resolver.Plan) bool {
						printPlan(cmd, plan)
						return confirm(cmd, in, "Do you want to proceed?")
					}
				}
			}

			rep, err := engine.Run(cmd.Context(), req)
			if errors.Is(err, pipeline.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			if err != nil {
				return err
			}

			printResults(cmd, rep, dryRun)
			if showReport {
				fmt.Fprint(cmd.OutOrStdout(), rep.Render())
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&commands, "run", "x", nil, "override command for the next file (repeatable, in gist order; split on whitespace, shell quoting is not interpreted)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the command per file without executing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompts")
	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub API token (defaults to GH_TOKEN or GITHUB_TOKEN)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "per-file timeout in seconds; 0 disables the timeout")
	cmd.Flags().BoolVar(&showReport, "report", false, "print the execution report after the run")
	cmd.Flags().StringVarP(&expected, "hash", "H", "", "expected digest of the combined file contents; refuse to run on mismatch")
	cmd.Flags().StringVarP(&hashFunc, "hash-func", "f", "", "digest algorithm for --hash (sha256, sha512, sha1, md5)")
	return cmd
}

func printPlan(cmd *cobra.Command, plan resolver.Plan) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "The following commands will be executed:")
	for _, step := range plan {
		fmt.Fprintf(out, "  %s %s\n", step.Command, step.File.Name)
	}
}

func printResults(cmd *cobra.Command, rep *report.Report, dryRun bool) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	for _, res := range rep.Results {
		switch res.Outcome {
		case executor.Skipped:
			if dryRun {
				fmt.Fprintf(out, "Dry run - skipping execution of %s with %s\n", res.File, res.Command)
			} else {
				fmt.Fprintf(out, "Skipping %s...\n", res.File)
			}
		case executor.Succeeded:
			out.Write(res.Stdout)
			errOut.Write(res.Stderr)
		default:
			fmt.Fprintf(errOut, "Error executing %s: %s\n", res.File, res.Detail)
			errOut.Write(res.Stderr)
		}
		if res.Truncated {
			fmt.Fprintf(errOut, "(output of %s truncated)\n", res.File)
		}
	}
}

// confirm prompts on stdout and reads a yes/no answer from in. EOF or
// anything but y/yes declines.
func confirm(cmd *cobra.Command, in *bufio.Reader, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
