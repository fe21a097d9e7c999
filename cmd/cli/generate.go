package main

import (
	"github.com/spf13/cobra"

	"github.com/yaobinwen/netplan/pkg/generate"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Run netplan generate for the root directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate.NewRunner(a.cfg.GenerateCommand).Run(cmd.Context(), a.cfg.RootDir)
		},
	}
}
