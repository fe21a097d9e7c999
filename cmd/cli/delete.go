package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaobinwen/netplan/internal/logging"
	"github.com/yaobinwen/netplan/pkg/editor"
	"github.com/yaobinwen/netplan/pkg/generate"
)

func newDeleteCmd(a *app) *cobra.Command {
	var runGenerate bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove one device definition from the netplan config set",
		Long: `delete finds the definition keyed by <id> in the netplan documents below
the root directory and removes it. A document left without device definitions
is deleted, any other document is rewritten in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			cs, err := editor.New(a.cfg.SearchDirs...).Delete(cmd.Context(), id, a.cfg.RootDir)
			if err != nil {
				return err
			}
			for _, c := range cs.Changes {
				logging.Info("updated config set", "id", id, "action", string(c.Action), "path", c.Path())
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.Action, c.Path()); err != nil {
					return err
				}
			}

			if runGenerate || a.cfg.GenerateAfterDelete {
				return generate.NewRunner(a.cfg.GenerateCommand).Run(cmd.Context(), a.cfg.RootDir)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&runGenerate, "generate", false, "Run netplan generate after a successful delete")
	return cmd
}
