package ao3

import (
	"ao3search/internal/components/telemetry"
	"ao3search/lib/testutil"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t testing.TB, status int, body []byte) (*httptest.Server, *atomic.Int64, *atomic.Value) {
	var hits atomic.Int64
	var lastQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		lastQuery.Store(r.URL.RawQuery)
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, &hits, &lastQuery
}

func newTestClient(server *httptest.Server, tel telemetry.API) Client {
	return NewClient(ClientOptions{
		SearchUrl: server.URL + "/works/search",
		Fetcher: FetcherOptions{
			RequestsPerSecond:       100,
			DisableCloudflareBypass: true,
		},
	}, tel)
}

func TestClientSearch(t *testing.T) {
	page := testutil.ReadFile(t, "testdata/search.html")
	server, hits, lastQuery := newTestServer(t, http.StatusOK, page)

	client := newTestClient(server, &telemetry.RecordingAPI{})
	q := NewQuery().WithAnyField("example").OnlyCompleted()
	works, err := client.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, works, 2)
	require.Equal(t, "Example Work", works[0].Title)

	require.Equal(t, int64(1), hits.Load())
	require.Equal(t, q.QueryString(), lastQuery.Load())
}

func TestClientSimpleSearch(t *testing.T) {
	page := testutil.ReadFile(t, "testdata/search.html")
	server, _, lastQuery := newTestServer(t, http.StatusOK, page)

	client := newTestClient(server, &telemetry.RecordingAPI{})
	_, err := client.SimpleSearch(context.Background(), "dragons")
	require.NoError(t, err)
	require.Equal(t, NewQuery().WithAnyField("dragons").QueryString(), lastQuery.Load())
}

func TestClientStatusError(t *testing.T) {
	server, hits, _ := newTestServer(t, http.StatusServiceUnavailable, []byte("retry later"))

	tel := &telemetry.RecordingAPI{}
	client := newTestClient(server, tel)
	works, err := client.Search(context.Background(), NewQuery())
	require.Nil(t, works)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	// failures are not retried
	require.Equal(t, int64(1), hits.Load())
	require.NotEmpty(t, tel.Kind("broken"))
}

func TestClientUnparseablePage(t *testing.T) {
	server, _, _ := newTestServer(t, http.StatusOK, []byte("<html><body>Retry later</body></html>"))

	client := newTestClient(server, &telemetry.RecordingAPI{})
	_, err := client.Search(context.Background(), NewQuery())
	require.True(t, IsNotFound(err))
}

type fetchFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetchFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

func TestClientTransportErrorSurfaced(t *testing.T) {
	transportErr := errors.New("connection reset")
	client := NewClientWithFetcher(ClientOptions{}, fetchFunc(func(context.Context, string) ([]byte, error) {
		return nil, transportErr
	}), &telemetry.RecordingAPI{})

	_, err := client.Search(context.Background(), NewQuery())
	require.ErrorIs(t, err, transportErr)
}

func TestClientURL(t *testing.T) {
	client := NewClientWithFetcher(ClientOptions{}, fetchFunc(nil), &telemetry.RecordingAPI{})
	require.Equal(t, NewQuery().URL(DefaultBaseUrl), client.URL(NewQuery()))
}
