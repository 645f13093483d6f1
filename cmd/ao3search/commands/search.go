package commands

import (
	"ao3search/internal/components/chrono"
	"ao3search/internal/db"
	"ao3search/internal/scrapers/ao3"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

var (
	searchFilters    *filterFlags
	searchDb         string
	searchSave       bool
	searchSkipBroken bool
	searchCache      bool
)

func init() {
	searchFilters = addFilterFlags(searchCmd)
	searchCmd.Flags().StringVar(&searchDb, "db", "", "The sqlite database to save results to, overrides the configured database.")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "Save the works found to the database.")
	searchCmd.Flags().BoolVar(&searchSkipBroken, "skip-broken", false, "Leave out works that could not be extracted instead of failing.")
	searchCmd.Flags().BoolVar(&searchCache, "cache", false, "Serve results pages from the local page cache while they are fresh.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [filters] [--save] [--db <path/to/output.db>] [--skip-broken] [--cache]",
	Short: "Searches for works and prints the first page of results.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := searchFilters.query()
		if err != nil {
			return err
		}
		slog.Debug("built query", "query", q.String())

		opts := cfg.clientOptions(policyFor(searchSkipBroken))
		fetcher := ao3.NewRestyFetcher(opts.Fetcher, tel)
		if searchCache {
			cache, err := badger.Open(badger.DefaultOptions(cfg.Cache.Dir).WithLogger(nil))
			if err != nil {
				return fmt.Errorf("open page cache: %w", err)
			}
			defer cache.Close()

			fetcher = ao3.NewCachedFetcher(
				cache,
				fetcher,
				ao3.CacheOptions{Lifetime: time.Duration(cfg.Cache.LifetimeMinutes) * time.Minute},
				chrono.NewStandardTime(),
				tel,
			)
		}
		client := ao3.NewClientWithFetcher(opts, fetcher, tel)

		t1 := time.Now()
		works, err := client.Search(cmd.Context(), q)
		if err != nil {
			return err
		}
		slog.Debug("search time", "seconds", time.Since(t1).Seconds())

		renderWorks(cmd.OutOrStdout(), works)

		if !searchSave && searchDb == "" {
			return nil
		}
		database := cfg.Database
		if searchDb != "" {
			database.File = searchDb
			database.Url = ""
		}
		out, err := database.OpenDB(db.Schema)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer out.Close()

		err = ao3.NewStore(out, chrono.NewStandardTime()).Save(cmd.Context(), works)
		if err != nil {
			return fmt.Errorf("save works: %w", err)
		}
		slog.Info("saved works", "count", len(works))
		return nil
	},
}
