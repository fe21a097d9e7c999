package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaobinwen/netplan/internal/logging"
	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		existingID string
		outputDir  string
		toStdout   bool
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "render [keyfile|-]",
		Short: "Convert a keyfile profile into a 90-NM-<uuid>.yaml document",
		Long: `render reads a NetworkManager keyfile profile (stdin when no path is given)
and writes the netplan document 90-NM-<uuid>.yaml into the output directory,
<root-dir>/<config_dir> by default. The written path is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			data, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return nperrors.New(nperrors.KindIO, fmt.Errorf("read input: %w", err))
			}
			opts := netplanconfig.RenderOptions{ExistingID: existingID, Timeout: timeout}

			if toStdout {
				bundle, err := a.backend.ToNetplan(cmd.Context(), netplanconfig.KeyfileBundle(path, data), opts)
				if err != nil {
					return err
				}
				pkg, _ := bundle.Main()
				return writeOutput(cmd.OutOrStdout(), pkg.Content)
			}

			dir := outputDir
			if dir == "" {
				if dir, err = a.cfg.OutputDir(); err != nil {
					return err
				}
			}
			written, err := a.backend.RenderToDir(cmd.Context(), data, opts, dir)
			if err != nil {
				return err
			}
			logging.Info("rendered profile", "input", path, "output", written)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), written)
			return err
		},
	}
	cmd.Flags().StringVar(&existingID, "existing-id", "", "Reuse this netplan id instead of NM-<uuid>")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory to write the document to")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the document instead of writing it")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the conversion after this long")
	return cmd
}
