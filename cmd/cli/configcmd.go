package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaobinwen/netplan/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var initPath string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initPath != "" {
				if err := config.WriteDefault(initPath); err != nil {
					return &config.Error{Path: initPath, Err: err}
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), initPath)
				return err
			}
			return a.cfg.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&initPath, "init", "", "Write the default configuration to this path")
	return cmd
}
