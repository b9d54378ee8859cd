package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/store/file"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/store/sqlite"
)

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or seed the ingredient catalog",
	}
	catalog.AddCommand(newCatalogListCommand(opts), newCatalogImportCommand(opts))
	return catalog
}

func newCatalogListCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List canonical names in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, components, err := opts.build(cmd)
			if err != nil {
				return err
			}
			defer components.Close()

			names, err := components.Catalog.Names(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), names, opts.pretty)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output names as a JSON array")
	return cmd
}

func newCatalogImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON catalog into the SQLite database",
		Long: `Reads a JSON catalog (the same format as the file source) and upserts every
entry into the SQLite database at database.sqlite_path. New names are appended
to the end of the match order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ingredients, err := file.NewStore(args[0]).ListIngredients(cmd.Context())
			if err != nil {
				return err
			}

			db, err := sqlite.NewStore(cfg.Database.SQLitePath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.SaveIngredients(cmd.Context(), ingredients); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d ingredients into %s\n", len(ingredients), db.Path())
			return nil
		},
	}
}
