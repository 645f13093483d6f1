package commands

import (
	"ao3search/internal/components/chrono"
	"ao3search/internal/db"
	"ao3search/internal/scrapers/ao3"
	"fmt"

	"github.com/spf13/cobra"
)

var savedDb string

func init() {
	savedCmd.Flags().StringVar(&savedDb, "db", "", "The sqlite database to read from, overrides the configured database.")
	rootCmd.AddCommand(savedCmd)
}

var savedCmd = &cobra.Command{
	Use:   "saved [--db <path/to/output.db>]",
	Short: "Lists the works saved by previous searches.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database := cfg.Database
		if savedDb != "" {
			database.File = savedDb
			database.Url = ""
		}
		out, err := database.OpenDB(db.Schema)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer out.Close()

		works, err := ao3.NewStore(out, chrono.NewStandardTime()).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list works: %w", err)
		}
		renderWorks(cmd.OutOrStdout(), works)
		return nil
	},
}
