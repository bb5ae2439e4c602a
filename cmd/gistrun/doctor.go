package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/gistrun/gistrun/internal/config"
	"github.com/gistrun/gistrun/internal/resolver"
)

func newDoctorCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Show the extension mapping, interpreter availability, and effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Extension mapping:")
			for _, m := range resolver.Mappings(cfg.Commands) {
				if resolver.IsSkip(m.Command) {
					fmt.Fprintf(out, "  %-10s skip\n", m.Ext)
					continue
				}
				status := "ok"
				if _, err := exec.LookPath(resolver.Binary(m.Command)); err != nil {
					status = "missing"
				}
				fmt.Fprintf(out, "  %-10s %-20s %s\n", m.Ext, m.Command, status)
			}

			dump, err := cfg.Dump()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nConfig:\n%s", dump)
			return nil
		},
	}
}
