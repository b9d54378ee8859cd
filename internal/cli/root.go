// Package cli implements the standardize command line tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amaru333/cci-hackathon-2025-backend/config"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/app"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/logger"
)

var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string

	threshold int
	report    bool
	pretty    bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "standardize [file]",
		Short: "Map receipt item names to canonical ingredient names",
		Long: `Standardizes receipt line items against the canonical ingredient catalog.
Each name is normalized and resolved by exact, substring, then fuzzy matching.

Items are read as JSON from file, or from stdin when file is omitted or "-".
Both a bare array of items and {"items": [...]} are accepted.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runStandardize(cmd, args)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.Flags().IntVarP(&opts.threshold, "threshold", "t", -1, "fuzzy match threshold 0-100 (default from config)")
	root.Flags().BoolVar(&opts.report, "report", false, "include per-item match report")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")

	root.AddCommand(
		newCatalogCommand(opts),
		newVersionCommand(),
	)
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// build loads configuration and assembles the service. Logs go to stderr so
// stdout stays machine readable.
func (o *rootOptions) build(cmd *cobra.Command) (*config.Config, *app.Components, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.Log, cmd.ErrOrStderr())
	components, err := app.Build(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, components, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "standardize version %s\n", version)
		},
	}
}
