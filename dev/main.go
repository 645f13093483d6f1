// dev downloads a live results page into the scraper's testdata so the
// extractor can be checked against the current markup of the site.
package main

import (
	devenv "ao3search/dev/env"
	"ao3search/internal/components/telemetry"
	"ao3search/internal/scrapers/ao3"
	"ao3search/lib/util/serviceutil"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"
)

func fetch(ctx context.Context, text, out string) error {
	path, err := devenv.TestdataPath(out)
	if err != nil {
		return fmt.Errorf("the dev tool must be run inside the repository: %w", err)
	}

	fetcher := ao3.NewRestyFetcher(ao3.FetcherOptions{}, telemetry.NewSlogAPI())
	target := ao3.NewQuery().WithAnyField(text).URL("")
	slog.Info("fetching results page", "url", target)

	body, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return err
	}
	err = os.WriteFile(path, body, 0666)
	if err != nil {
		return err
	}
	slog.Info("wrote results page", "path", path, "bytes", len(body))
	return nil
}

func main() {
	text := flag.String("q", "dragons", "the text to search for")
	out := flag.String("out", "live.html", "the file name to write inside the testdata directory")
	flag.Parse()

	telemetry.InitSlog(os.Stderr, false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err := fetch(ctx, *text, *out)
	if err != nil {
		serviceutil.Fatal("failed to fetch results page", err)
	}
}
