package ao3

import (
	"ao3search/internal/components/assert"
	"ao3search/internal/components/telemetry"
	"ao3search/lib/htmlutil"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	report_parser_parse_document = "parser.parse-document"
	report_parser_parse_work     = "parser.parse-work"
	report_parser_works          = "parser.works"
)

const DefaultSiteUrl = "https://archiveofourown.org"

// dateLayout is the format of the date shown on each result.
const dateLayout = "02 Jan 2006"

// RecordPolicy decides what happens to a results page when one of its
// records cannot be extracted.
type RecordPolicy int

const (
	// AbortOnBrokenRecord fails the whole page with the first broken record.
	AbortOnBrokenRecord RecordPolicy = iota
	// SkipBrokenRecord reports the broken record and leaves it out.
	SkipBrokenRecord
)

type ParserOptions struct {
	// BaseUrl is the root of the site, it is used to build Work.Url.
	// Defaults to DefaultSiteUrl.
	BaseUrl string
	Policy  RecordPolicy
}

// Parser extracts works out of a results page.
type Parser struct {
	baseUrl string
	policy  RecordPolicy
	tel     telemetry.API
}

func NewParser(opts ParserOptions, tel telemetry.API) Parser {
	assert.NotNil(tel)

	baseUrl := strings.TrimSuffix(opts.BaseUrl, "/")
	if baseUrl == "" {
		baseUrl = DefaultSiteUrl
	}
	return Parser{
		baseUrl: baseUrl,
		policy:  opts.Policy,
		tel:     telemetry.NewScopedAPI("ao3", tel),
	}
}

func (p Parser) ParseSearchPage(r io.Reader) ([]Work, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		p.tel.ReportBroken(report_parser_parse_document, fmt.Errorf("parse html: %w", err))
		return nil, fmt.Errorf("parse results page: %w", err)
	}
	return p.ParseDocument(doc.Get(0))
}

// ParseDocument returns the works on the page in document order. A page with
// no records at all is a NotFoundError, since even an empty search has
// different markup than a page that was not understood.
func (p Parser) ParseDocument(root *html.Node) ([]Work, error) {
	records := htmlutil.FindAll(root, htmlutil.AttrEquals("role", "article"))
	if len(records) == 0 {
		err := &NotFoundError{Landmark: "role=article"}
		p.tel.ReportBroken(report_parser_parse_document, err)
		return nil, err
	}

	works := make([]Work, 0, len(records))
	for i, record := range records {
		work, err := p.ParseWork(record)
		if err != nil {
			err = &RecordError{Index: i, Err: err}
			if p.policy == SkipBrokenRecord {
				p.tel.ReportWarning(report_parser_parse_work, err)
				continue
			}
			p.tel.ReportBroken(report_parser_parse_work, err)
			return nil, err
		}
		works = append(works, work)
	}

	p.tel.ReportCount(report_parser_works, int64(len(works)))
	return works, nil
}

// ParseWork extracts a single record, it either returns a complete Work or
// an error.
func (p Parser) ParseWork(record *html.Node) (Work, error) {
	id, err := parseWorkId(record)
	if err != nil {
		return Work{}, err
	}

	href := "/works/" + id
	titleLink := htmlutil.FindFirst(record, htmlutil.And(
		htmlutil.HasTag("a"),
		htmlutil.AttrEquals("href", href),
	))
	if titleLink == nil {
		return Work{}, &NotFoundError{Landmark: fmt.Sprintf("title a[href=%q]", href)}
	}

	container := htmlutil.FindFirst(record, htmlutil.HasClasses("fandoms", "heading"))
	if container == nil {
		return Work{}, &NotFoundError{Landmark: "fandoms heading"}
	}
	fandoms := cleanTexts(htmlutil.FindAll(container, htmlutil.HasClasses("tag")))

	// author links sit next to the title in the header that also holds the
	// fandom heading
	authorScope := htmlutil.Closest(container, record, htmlutil.HasClasses("header"))
	if authorScope == nil {
		authorScope = container
	}
	authors := cleanTexts(htmlutil.FindAll(authorScope, htmlutil.AttrEquals("rel", "author")))

	sel := goquery.NewDocumentFromNode(record).Selection

	date, err := parseDate(sel)
	if err != nil {
		return Work{}, err
	}
	wordCount, err := parseWordCount(sel)
	if err != nil {
		return Work{}, err
	}
	isComplete, err := parseIsComplete(sel)
	if err != nil {
		return Work{}, err
	}

	return Work{
		Id:          id,
		Url:         p.baseUrl + href,
		Title:       htmlutil.GetCleanText(titleLink),
		Authors:     authors,
		Fandoms:     fandoms,
		Date:        date,
		WordCount:   wordCount,
		IsComplete:  isComplete,
		IsCrossover: len(fandoms) > 1,
		Rating:      parseRating(sel),
	}, nil
}

func parseWorkId(record *html.Node) (string, error) {
	raw, ok := htmlutil.Attr(record, "id")
	if !ok {
		return "", &NotFoundError{Landmark: "id"}
	}
	id := strings.TrimPrefix(raw, "work_")
	_, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return "", &MalformedError{Landmark: "id", Value: raw, Err: err}
	}
	return id, nil
}

func cleanTexts(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, node := range nodes {
		out[i] = htmlutil.GetCleanText(node)
	}
	return out
}

func parseDate(sel *goquery.Selection) (time.Time, error) {
	node := sel.Find("p.datetime").First()
	if node.Length() == 0 {
		return time.Time{}, &NotFoundError{Landmark: "p.datetime"}
	}
	text := htmlutil.NormalizeText(node.Text())
	date, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, &MalformedError{Landmark: "p.datetime", Value: text, Err: err}
	}
	return date, nil
}

func parseWordCount(sel *goquery.Selection) (int64, error) {
	node := sel.Find("dd.words").First()
	if node.Length() == 0 {
		return 0, &NotFoundError{Landmark: "dd.words"}
	}
	text := htmlutil.NormalizeText(node.Text())
	count, err := strconv.ParseInt(strings.ReplaceAll(text, ",", ""), 10, 64)
	if err != nil {
		return 0, &MalformedError{Landmark: "dd.words", Value: text, Err: err}
	}
	return count, nil
}

func parseIsComplete(sel *goquery.Selection) (bool, error) {
	node := sel.Find("span.iswip").First()
	if node.Length() == 0 {
		return false, &NotFoundError{Landmark: "span.iswip"}
	}
	switch {
	case node.HasClass("complete-yes"):
		return true, nil
	case node.HasClass("complete-no"):
		return false, nil
	}
	class, _ := node.Attr("class")
	return false, &MalformedError{Landmark: "span.iswip", Value: class}
}

func parseRating(sel *goquery.Selection) *Rating {
	title, ok := sel.Find("span.rating").First().Attr("title")
	if !ok {
		return nil
	}
	rating, err := ParseRating(title)
	if err != nil {
		return nil
	}
	return &rating
}

// IsNotFound reports whether err was caused by a missing landmark.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsMalformed reports whether err was caused by a landmark with unexpected content.
func IsMalformed(err error) bool {
	var target *MalformedError
	return errors.As(err, &target)
}
