package main

import (
	"github.com/spf13/cobra"

	nmbackend "github.com/yaobinwen/netplan/backend/networkmanager"
	"github.com/yaobinwen/netplan/internal/config"
	"github.com/yaobinwen/netplan/internal/logging"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	rootDir    string
	verbose    bool
	jsonOutput bool

	cfg     *config.Config
	backend *nmbackend.Backend
}

func newRootCmd() *cobra.Command {
	a := &app{backend: nmbackend.Default()}

	root := &cobra.Command{
		Use:   "netplan-nm",
		Short: "Bridge NetworkManager keyfile profiles and netplan YAML",
		Long: `netplan-nm converts NetworkManager keyfile connection profiles into
netplan YAML documents and edits the netplan config set on their behalf.

Settings netplan cannot express natively are kept as passthrough entries,
so every key of a profile survives the conversion.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a TOML configuration file")
	flags.StringVar(&a.rootDir, "root-dir", "", "Operate on the config set below this directory")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output logs in JSON format")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newResolveIDCmd(a),
		newRenderCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newGetCmd(a),
		newGenerateCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.rootDir != "" {
		cfg.RootDir = a.rootDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logging.Setup(a.verbose || cfg.Logging.Verbose, a.jsonOutput || cfg.Logging.JSON, cmd.ErrOrStderr())
	if cfg.Path != "" {
		logging.Debug("loaded configuration", "path", cfg.Path)
	}
	return nil
}
