package ao3

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

const DefaultBaseUrl = "https://archiveofourown.org/works/search"

// Query describes a work search. It is a value, every setter returns an
// updated copy and leaves the receiver untouched.
type Query struct {
	anyField       Text
	title          Text
	authors        MultiString
	date           DateRange
	completion     CompletionStatus
	crossover      CrossoverStatus
	singleChapter  Toggle
	wordCount      NumberRange
	fandoms        MultiString
	rating         Rating
	warnings       MultiSelect[ArchiveWarning]
	categories     MultiSelect[Category]
	characters     MultiString
	relationships  MultiString
	additionalTags MultiString
	hits           NumberRange
	kudos          NumberRange
	comments       NumberRange
	bookmarks      NumberRange
	sortColumn     SortColumn
	sortDirection  SortDirection
}

// NewQuery returns a query with every filter left neutral, sorted by best
// match in descending order.
func NewQuery() Query {
	return Query{
		sortColumn:    SortBestMatch,
		sortDirection: SortDescending,
	}
}

func (q Query) WithAnyField(text string) Query {
	q.anyField = Text(text)
	return q
}

func (q Query) WithTitle(title string) Query {
	q.title = Text(title)
	return q
}

func (q Query) WithAuthors(authors ...string) Query {
	q.authors = slices.Clone(authors)
	return q
}

func (q Query) AddAuthor(author string) Query {
	q.authors = append(slices.Clone(q.authors), author)
	return q
}

func (q Query) WithDateRange(r DateRange) Query {
	q.date = r
	return q
}

func (q Query) OnlyCompleted() Query {
	q.completion = CompletionOnlyCompleted
	return q
}

func (q Query) OnlyIncomplete() Query {
	q.completion = CompletionOnlyIncomplete
	return q
}

func (q Query) IgnoreCompletionStatus() Query {
	q.completion = CompletionIgnore
	return q
}

func (q Query) OnlyCrossovers() Query {
	q.crossover = CrossoverOnly
	return q
}

func (q Query) OnlyNonCrossovers() Query {
	q.crossover = CrossoverExclude
	return q
}

func (q Query) IgnoreCrossoverStatus() Query {
	q.crossover = CrossoverIgnore
	return q
}

func (q Query) WithSingleChapter(singleChapter bool) Query {
	q.singleChapter = Toggle(singleChapter)
	return q
}

func (q Query) WithWordCount(r NumberRange) Query {
	q.wordCount = r
	return q
}

func (q Query) WithFandoms(fandoms ...string) Query {
	q.fandoms = slices.Clone(fandoms)
	return q
}

func (q Query) AddFandom(fandom string) Query {
	q.fandoms = append(slices.Clone(q.fandoms), fandom)
	return q
}

func (q Query) WithRating(rating Rating) Query {
	q.rating = rating
	return q
}

func (q Query) WithArchiveWarnings(warnings ...ArchiveWarning) Query {
	q.warnings = slices.Clone(warnings)
	return q
}

func (q Query) AddArchiveWarning(warning ArchiveWarning) Query {
	q.warnings = append(slices.Clone(q.warnings), warning)
	return q
}

func (q Query) WithCategories(categories ...Category) Query {
	q.categories = slices.Clone(categories)
	return q
}

func (q Query) AddCategory(category Category) Query {
	q.categories = append(slices.Clone(q.categories), category)
	return q
}

func (q Query) WithCharacters(characters ...string) Query {
	q.characters = slices.Clone(characters)
	return q
}

func (q Query) AddCharacter(character string) Query {
	q.characters = append(slices.Clone(q.characters), character)
	return q
}

func (q Query) WithRelationships(relationships ...string) Query {
	q.relationships = slices.Clone(relationships)
	return q
}

func (q Query) AddRelationship(relationship string) Query {
	q.relationships = append(slices.Clone(q.relationships), relationship)
	return q
}

func (q Query) WithAdditionalTags(tags ...string) Query {
	q.additionalTags = slices.Clone(tags)
	return q
}

func (q Query) AddAdditionalTag(tag string) Query {
	q.additionalTags = append(slices.Clone(q.additionalTags), tag)
	return q
}

func (q Query) WithHits(r NumberRange) Query {
	q.hits = r
	return q
}

func (q Query) WithKudos(r NumberRange) Query {
	q.kudos = r
	return q
}

func (q Query) WithComments(r NumberRange) Query {
	q.comments = r
	return q
}

func (q Query) WithBookmarks(r NumberRange) Query {
	q.bookmarks = r
	return q
}

func (q Query) WithSortColumn(column SortColumn) Query {
	q.sortColumn = column
	return q
}

func (q Query) WithSortDirection(direction SortDirection) Query {
	q.sortDirection = direction
	return q
}

// queryField is one filter of the query, exactly one of single and multi is set.
type queryField struct {
	key    string
	label  string
	single QueryValue
	multi  MultiQueryValue
}

func (f queryField) isIncluded() bool {
	if f.multi != nil {
		return f.multi.IsIncluded()
	}
	return f.single.IsIncluded()
}

func (f queryField) display() string {
	if f.multi != nil {
		return f.multi.String()
	}
	return f.single.String()
}

// fields lists the filters in the order they are sent in.
func (q Query) fields() []queryField {
	return []queryField{
		{key: "query", label: "any field", single: q.anyField},
		{key: "title", label: "title", single: q.title},
		{key: "authors", label: "author", single: q.authors},
		{key: "revised_at", label: "date", single: q.date},
		{key: "complete", label: "completion status", single: q.completion},
		{key: "crossover", label: "crossover", single: q.crossover},
		{key: "single_chapter", label: "is single chapter", single: q.singleChapter},
		{key: "word_count", label: "word count", single: q.wordCount},
		{key: "fandom_names", label: "fandoms", single: q.fandoms},
		{key: "rating_ids", label: "rating", single: q.rating},
		{key: "archive_warning_ids", label: "archive warnings", multi: q.warnings},
		{key: "category_ids", label: "categories", multi: q.categories},
		{key: "character_names", label: "characters", single: q.characters},
		{key: "relationship_name", label: "relationships", single: q.relationships},
		{key: "freeform_names", label: "additional tags", single: q.additionalTags},
		{key: "hits", label: "hits", single: q.hits},
		{key: "kudos_count", label: "kudos", single: q.kudos},
		// the misspelling is the name the search form uses
		{key: "commets_count", label: "comments", single: q.comments},
		{key: "bookmarks_count", label: "bookmarks", single: q.bookmarks},
		{key: "sort_column", label: "sort by", single: q.sortColumn},
		{key: "sort_direction", label: "sort direction", single: q.sortDirection},
	}
}

// QueryString renders the query as `work_search[<key>]=<value>` pairs joined
// by `&`, filters that are not included are left out entirely. Values are
// url escaped, keys are written as-is.
func (q Query) QueryString() string {
	var pairs []string
	for _, field := range q.fields() {
		if !field.isIncluded() {
			continue
		}
		if field.multi != nil {
			for _, value := range field.multi.QueryValues() {
				pairs = append(pairs, fmt.Sprintf(
					"work_search[%s][]=%s",
					field.key, url.QueryEscape(value),
				))
			}
			continue
		}
		pairs = append(pairs, fmt.Sprintf(
			"work_search[%s]=%s",
			field.key, url.QueryEscape(field.single.QueryValue()),
		))
	}
	return strings.Join(pairs, "&")
}

// URL returns the full search url, baseUrl defaults to DefaultBaseUrl when empty.
func (q Query) URL(baseUrl string) string {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return baseUrl + "?" + q.QueryString()
}

func (q Query) String() string {
	var sb strings.Builder
	sb.WriteString("Query:\n")
	for _, field := range q.fields() {
		if !field.isIncluded() {
			continue
		}
		fmt.Fprintf(&sb, "\t%s: %s\n", field.label, field.display())
	}
	return sb.String()
}
