package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaobinwen/netplan/pkg/nmfile"
)

func newResolveIDCmd(a *app) *cobra.Command {
	var ssid string
	cmd := &cobra.Command{
		Use:   "resolve-id <profile-path>",
		Short: "Print the netplan id embedded in a generated profile file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := nmfile.NewResolver(a.cfg.ConnectionsDir)
			var (
				id string
				ok bool
			)
			if cmd.Flags().Changed("ssid") {
				id, ok = r.WifiID(args[0], ssid)
			} else {
				id, ok = r.ID(args[0])
			}
			if !ok {
				return fmt.Errorf("%s: %w", args[0], errNotApplicable)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
	cmd.Flags().StringVar(&ssid, "ssid", "", "SSID of a wifi profile")
	return cmd
}
