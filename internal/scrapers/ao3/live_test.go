package ao3

import (
	"ao3search/internal/components/telemetry"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseLivePage runs the extractor over a page downloaded with
// `go run ./dev`, it is skipped when no page was downloaded.
func TestParseLivePage(t *testing.T) {
	f, err := os.Open("testdata/live.html")
	if os.IsNotExist(err) {
		t.Skip("testdata/live.html does not exist, run `go run ./dev` to download it")
	}
	require.NoError(t, err)
	defer f.Close()

	tel := &telemetry.RecordingAPI{}
	works, err := NewParser(ParserOptions{Policy: SkipBrokenRecord}, tel).ParseSearchPage(f)
	require.NoError(t, err)
	require.NotEmpty(t, works)

	for _, warning := range tel.Kind("warning") {
		t.Log(warning.Params...)
	}
	for _, work := range works {
		require.NotEmpty(t, work.Id)
		require.NotEmpty(t, work.Title)
	}
}
