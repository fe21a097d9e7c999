package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaobinwen/netplan/internal/logging"
	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
	"github.com/yaobinwen/netplan/pkg/store"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print the merged netplan configuration, or the value under a dotted key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := store.Discover(a.cfg.RootDir, a.cfg.SearchDirs)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				logging.Info("no netplan documents found", "root", a.cfg.RootDir)
				return nil
			}
			configs := make([][]byte, 0, len(paths))
			for _, p := range paths {
				data, err := os.ReadFile(p)
				if err != nil {
					return nperrors.New(nperrors.KindIO, fmt.Errorf("read %s: %w", p, err))
				}
				configs = append(configs, data)
			}
			merged, err := netplanconfig.MergeYAML(configs, nil)
			if err != nil {
				return nperrors.New(nperrors.KindMalformedInput, err)
			}
			if len(args) == 0 || args[0] == "all" {
				return writeOutput(cmd.OutOrStdout(), merged)
			}

			value, err := lookup(merged, args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), value)
		},
	}
}

// lookup returns the YAML of the value under a dotted key such as
// "network.ethernets.eth0".
func lookup(doc []byte, key string) ([]byte, error) {
	var current any
	if err := yaml.Unmarshal(doc, &current); err != nil {
		return nil, nperrors.New(nperrors.KindMalformedInput, err)
	}
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, nperrors.New(nperrors.KindNotFound, fmt.Errorf("key %q not found", key))
		}
		if current, ok = m[part]; !ok {
			return nil, nperrors.New(nperrors.KindNotFound, fmt.Errorf("key %q not found", key))
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(current); err != nil {
		return nil, nperrors.New(nperrors.KindRender, err)
	}
	if err := enc.Close(); err != nil {
		return nil, nperrors.New(nperrors.KindRender, err)
	}
	return buf.Bytes(), nil
}
