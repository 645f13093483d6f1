package ao3

import (
	"ao3search/internal/components/telemetry"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func ratingPtr(r Rating) *Rating {
	return &r
}

func TestParseSearchPage(t *testing.T) {
	f, err := os.Open("testdata/search.html")
	require.NoError(t, err)
	defer f.Close()

	tel := &telemetry.RecordingAPI{}
	parser := NewParser(ParserOptions{}, tel)
	works, err := parser.ParseSearchPage(f)
	require.NoError(t, err)

	expect := []Work{
		{
			Id:          "12345678",
			Url:         "https://archiveofourown.org/works/12345678",
			Title:       "Example Work",
			Authors:     []string{"Author One", "Author Two"},
			Fandoms:     []string{"Fandom A", "Fandom B"},
			Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			WordCount:   12345,
			IsComplete:  true,
			IsCrossover: true,
			Rating:      ratingPtr(RatingGeneral),
		},
		{
			Id:          "87654321",
			Url:         "https://archiveofourown.org/works/87654321",
			Title:       "Another Work",
			Authors:     []string{"Solo"},
			Fandoms:     []string{"Fandom C"},
			Date:        time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
			WordCount:   987,
			IsComplete:  false,
			IsCrossover: false,
			Rating:      ratingPtr(RatingTeenAndUp),
		},
	}
	if diff := cmp.Diff(expect, works); diff != "" {
		t.Fatal(diff)
	}

	require.Empty(t, tel.Kind("broken"))
	require.Len(t, tel.Kind("count"), 1)
}

// record builds a results page around a single record with the given id
// attribute and inner markup.
func record(idAttr, inner string) string {
	return `<html><body><ol class="work index group"><li ` + idAttr + ` class="work blurb group" role="article">` +
		inner +
		`</li></ol></body></html>`
}

const minimalInner = `
<div class="header module">
  <h4 class="heading"><a href="/works/1">One</a> by <a rel="author" href="/users/x">X</a></h4>
  <h5 class="fandoms heading"><a class="tag" href="/tags/F">F</a></h5>
  <span class="complete-yes iswip" title="Complete Work"></span>
  <p class="datetime">02 Jan 2006</p>
</div>
<dl class="stats"><dd class="words">1,000</dd></dl>`

func TestParseMinimalRecord(t *testing.T) {
	parser := NewParser(ParserOptions{BaseUrl: "http://localhost/"}, &telemetry.RecordingAPI{})
	works, err := parser.ParseSearchPage(strings.NewReader(record(`id="work_1"`, minimalInner)))
	require.NoError(t, err)
	require.Len(t, works, 1)

	work := works[0]
	require.Equal(t, "1", work.Id)
	require.Equal(t, "http://localhost/works/1", work.Url)
	require.Equal(t, []string{"X"}, work.Authors)
	require.Equal(t, int64(1000), work.WordCount)
	require.Nil(t, work.Rating)
}

func TestParseAuthorsInsideContainer(t *testing.T) {
	inner := `
<h4 class="heading"><a href="/works/2">Two</a></h4>
<div class="fandoms heading">
  <div><div><a rel="author" href="/users/deep">Deep Author</a></div></div>
  <a class="tag" href="/tags/F">F</a>
</div>
<span class="complete-no iswip"></span>
<p class="datetime">02 Jan 2006</p>
<dd class="words">5</dd>`

	parser := NewParser(ParserOptions{}, &telemetry.RecordingAPI{})
	works, err := parser.ParseSearchPage(strings.NewReader(record(`id="work_2"`, inner)))
	require.NoError(t, err)
	require.Equal(t, []string{"Deep Author"}, works[0].Authors)
	require.False(t, works[0].IsComplete)
}

func TestParseEmptyLists(t *testing.T) {
	inner := `
<a href="/works/3">Three</a>
<h5 class="fandoms heading"></h5>
<span class="complete-yes iswip"></span>
<p class="datetime">02 Jan 2006</p>
<dd class="words">5</dd>`

	parser := NewParser(ParserOptions{}, &telemetry.RecordingAPI{})
	works, err := parser.ParseSearchPage(strings.NewReader(record(`id="work_3"`, inner)))
	require.NoError(t, err)
	require.Empty(t, works[0].Authors)
	require.Empty(t, works[0].Fandoms)
	require.False(t, works[0].IsCrossover)
}

func TestParseMissingArticle(t *testing.T) {
	tel := &telemetry.RecordingAPI{}
	parser := NewParser(ParserOptions{}, tel)
	works, err := parser.ParseSearchPage(strings.NewReader(`<html><body><ol class="work index group"></ol></body></html>`))
	require.Nil(t, works)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "role=article", notFound.Landmark)
	require.Equal(t, "could not find: role=article", err.Error())
	require.Len(t, tel.Kind("broken"), 1)
}

func TestParseBrokenRecord(t *testing.T) {
	testCases := []struct {
		name      string
		idAttr    string
		inner     string
		landmark  string
		malformed bool
	}{
		{
			name:     "missing id",
			idAttr:   ``,
			inner:    minimalInner,
			landmark: "id",
		},
		{
			name:      "non numeric id",
			idAttr:    `id="work_abc"`,
			inner:     minimalInner,
			landmark:  "id",
			malformed: true,
		},
		{
			name:     "missing title link",
			idAttr:   `id="work_1"`,
			inner:    strings.Replace(minimalInner, `href="/works/1"`, `href="/works/1/chapters/2"`, 1),
			landmark: `title a[href="/works/1"]`,
		},
		{
			name:     "missing fandoms heading",
			idAttr:   `id="work_1"`,
			inner:    strings.Replace(minimalInner, `class="fandoms heading"`, `class="fandoms"`, 1),
			landmark: "fandoms heading",
		},
		{
			name:     "missing date",
			idAttr:   `id="work_1"`,
			inner:    strings.Replace(minimalInner, `class="datetime"`, `class="date"`, 1),
			landmark: "p.datetime",
		},
		{
			name:      "malformed date",
			idAttr:    `id="work_1"`,
			inner:     strings.Replace(minimalInner, `02 Jan 2006`, `yesterday`, 1),
			landmark:  "p.datetime",
			malformed: true,
		},
		{
			name:     "missing word count",
			idAttr:   `id="work_1"`,
			inner:    strings.Replace(minimalInner, `class="words"`, `class="chapters"`, 1),
			landmark: "dd.words",
		},
		{
			name:      "malformed word count",
			idAttr:    `id="work_1"`,
			inner:     strings.Replace(minimalInner, `1,000`, `lots`, 1),
			landmark:  "dd.words",
			malformed: true,
		},
		{
			name:     "missing completion",
			idAttr:   `id="work_1"`,
			inner:    strings.Replace(minimalInner, `iswip`, `status`, 1),
			landmark: "span.iswip",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			parser := NewParser(ParserOptions{}, &telemetry.RecordingAPI{})
			works, err := parser.ParseSearchPage(strings.NewReader(record(test.idAttr, test.inner)))
			require.Error(t, err)
			require.Nil(t, works)

			var recordErr *RecordError
			require.True(t, errors.As(err, &recordErr))
			require.Equal(t, 0, recordErr.Index)

			if test.malformed {
				var malformed *MalformedError
				require.True(t, errors.As(err, &malformed), err.Error())
				require.Equal(t, test.landmark, malformed.Landmark)
				require.False(t, IsNotFound(err))
				return
			}
			var notFound *NotFoundError
			require.True(t, errors.As(err, &notFound), err.Error())
			require.Equal(t, test.landmark, notFound.Landmark)
			require.False(t, IsMalformed(err))
		})
	}
}

func TestParseRecordPolicy(t *testing.T) {
	broken := `<li id="work_2" class="work blurb group" role="article"><p>nothing here</p></li>`
	page := strings.Replace(
		record(`id="work_1"`, minimalInner),
		"</ol>",
		broken+"</ol>",
		1,
	)

	tel := &telemetry.RecordingAPI{}
	aborting := NewParser(ParserOptions{Policy: AbortOnBrokenRecord}, tel)
	_, err := aborting.ParseSearchPage(strings.NewReader(page))
	var recordErr *RecordError
	require.True(t, errors.As(err, &recordErr))
	require.Equal(t, 1, recordErr.Index)
	require.Len(t, tel.Kind("broken"), 1)

	tel = &telemetry.RecordingAPI{}
	skipping := NewParser(ParserOptions{Policy: SkipBrokenRecord}, tel)
	works, err := skipping.ParseSearchPage(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, works, 1)
	require.Equal(t, "1", works[0].Id)
	require.Len(t, tel.Kind("warning"), 1)
	require.Empty(t, tel.Kind("broken"))
}
