package commands

import (
	"ao3search/internal/scrapers/ao3"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var urlFilters *filterFlags

func init() {
	urlFilters = addFilterFlags(urlCmd)
	rootCmd.AddCommand(urlCmd)
}

var urlCmd = &cobra.Command{
	Use:   "url [filters]",
	Short: "Prints the search url for the given filters without fetching it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := urlFilters.query()
		if err != nil {
			return err
		}
		slog.Debug("built query", "query", q.String())
		fmt.Fprintln(cmd.OutOrStdout(), q.URL(cfg.SearchUrl))
		return nil
	},
}

// policyFor maps the --skip-broken flag to a record policy.
func policyFor(skipBroken bool) ao3.RecordPolicy {
	if skipBroken {
		return ao3.SkipBrokenRecord
	}
	return ao3.AbortOnBrokenRecord
}
