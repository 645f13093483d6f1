package ao3

import (
	"ao3search/internal/components/assert"
	"ao3search/internal/components/telemetry"
	"context"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher retrieves the body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type FetcherOptions struct {
	UserAgent string
	// Timeout defaults to 30 seconds.
	Timeout time.Duration
	// RequestsPerSecond defaults to 1, the site throttles aggressive clients.
	RequestsPerSecond float64
	// DisableCloudflareBypass leaves the default transport untouched, it is
	// used when talking to a local server.
	DisableCloudflareBypass bool
}

type restyFetcher struct {
	http *resty.Client
}

// NewRestyFetcher returns a rate limited Fetcher backed by resty.
func NewRestyFetcher(opts FetcherOptions, tel telemetry.API) Fetcher {
	assert.NotNil(tel)

	httpClient := resty.New()
	if !opts.DisableCloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	httpClient.SetTimeout(timeout)

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	// burst of 1 keeps requests evenly spaced
	rateLimiter := rate.NewLimiter(rate.Limit(rps), 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return restyFetcher{http: httpClient}
}

func (f restyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, &StatusError{Url: url, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}
