package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		existingID string
		pretty     bool
	)
	cmd := &cobra.Command{
		Use:   "show [keyfile|-]",
		Short: "Print the device definition extracted from a keyfile profile as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			data, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return nperrors.New(nperrors.KindIO, fmt.Errorf("read input: %w", err))
			}
			opts := netplanconfig.ParseOptions{
				ExistingID:     existingID,
				SourceMetadata: map[string]string{"path": path},
			}
			msg, err := a.backend.Describe(cmd.Context(), netplanconfig.KeyfileBundle(path, data), opts)
			if err != nil {
				return err
			}
			marshal := protojson.MarshalOptions{}
			if pretty {
				marshal.Multiline = true
				marshal.Indent = "  "
			}
			payload, err := marshal.Marshal(msg)
			if err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), payload)
		},
	}
	cmd.Flags().StringVar(&existingID, "existing-id", "", "Reuse this netplan id instead of NM-<uuid>")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty print JSON")
	return cmd
}
