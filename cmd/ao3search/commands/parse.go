package commands

import (
	"ao3search/internal/scrapers/ao3"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseSkipBroken bool

func init() {
	parseCmd.Flags().BoolVar(&parseSkipBroken, "skip-broken", false, "Leave out works that could not be extracted instead of failing.")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <path/to/results.html> [--skip-broken]",
	Short: "Extracts the works out of a saved results page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		parser := ao3.NewParser(ao3.ParserOptions{
			BaseUrl: cfg.SiteUrl,
			Policy:  policyFor(parseSkipBroken),
		}, tel)
		works, err := parser.ParseSearchPage(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		renderWorks(cmd.OutOrStdout(), works)
		return nil
	},
}
