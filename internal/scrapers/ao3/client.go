package ao3

import (
	"ao3search/internal/components/assert"
	"ao3search/internal/components/telemetry"
	"bytes"
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("ao3search.scrapers.ao3")

const report_client_search = "client.search"

type ClientOptions struct {
	// SearchUrl is the search endpoint, defaults to DefaultBaseUrl.
	SearchUrl string
	Parser    ParserOptions
	Fetcher   FetcherOptions
}

// Client runs searches against the archive.
type Client struct {
	searchUrl string
	fetcher   Fetcher
	parser    Parser
	tel       telemetry.API
}

// NewClient returns a client that fetches pages with the default resty
// fetcher.
func NewClient(opts ClientOptions, tel telemetry.API) Client {
	return NewClientWithFetcher(opts, NewRestyFetcher(opts.Fetcher, tel), tel)
}

// NewClientWithFetcher returns a client that fetches pages through `fetcher`,
// opts.Fetcher is ignored.
func NewClientWithFetcher(opts ClientOptions, fetcher Fetcher, tel telemetry.API) Client {
	assert.NotNil(fetcher)
	assert.NotNil(tel)

	searchUrl := opts.SearchUrl
	if searchUrl == "" {
		searchUrl = DefaultBaseUrl
	}
	return Client{
		searchUrl: searchUrl,
		fetcher:   fetcher,
		parser:    NewParser(opts.Parser, tel),
		tel:       telemetry.NewScopedAPI("ao3", tel),
	}
}

// URL is the url Search would fetch for `q`.
func (c Client) URL(q Query) string {
	return q.URL(c.searchUrl)
}

// Search fetches the first results page of `q` and extracts its works.
// Transport failures are returned as-is, they are not retried.
func (c Client) Search(ctx context.Context, q Query) ([]Work, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	target := c.URL(q)
	span.SetAttributes(attribute.String("url", target))

	body, err := c.fetcher.Fetch(ctx, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch results page")
		c.tel.ReportBroken(report_client_search, fmt.Errorf("fetch: %w", err), target)
		return nil, err
	}

	works, err := c.parser.ParseSearchPage(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse results page")
		return nil, err
	}
	span.SetAttributes(attribute.Int("works", len(works)))
	return works, nil
}

// SimpleSearch searches every field of every work for `text`.
func (c Client) SimpleSearch(ctx context.Context, text string) ([]Work, error) {
	return c.Search(ctx, NewQuery().WithAnyField(text))
}
