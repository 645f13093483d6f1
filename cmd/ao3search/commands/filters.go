package commands

import (
	"ao3search/internal/scrapers/ao3"
	"fmt"

	"github.com/spf13/cobra"
)

// filterFlags holds the search filters shared by every command that builds
// a query.
type filterFlags struct {
	anyField      string
	title         string
	authors       []string
	date          string
	completion    string
	crossover     string
	singleChapter bool
	words         string
	fandoms       []string
	rating        string
	warnings      []string
	categories    []string
	characters    []string
	relationships []string
	tags          []string
	hits          string
	kudos         string
	comments      string
	bookmarks     string
	sort          string
	ascending     bool
}

func addFilterFlags(cmd *cobra.Command) *filterFlags {
	f := &filterFlags{}
	flags := cmd.Flags()
	flags.StringVarP(&f.anyField, "query", "q", "", "Text to look for in any field.")
	flags.StringVar(&f.title, "title", "", "Text to look for in the title.")
	flags.StringArrayVar(&f.authors, "author", nil, "An author name, may be repeated.")
	flags.StringVar(&f.date, "date", "", `When the work was last updated, ex. "< 7 days", "> 8 weeks ago", "13-21 months".`)
	flags.StringVar(&f.completion, "completion", "any", "One of: any, complete, incomplete.")
	flags.StringVar(&f.crossover, "crossover", "any", "One of: any, only, exclude.")
	flags.BoolVar(&f.singleChapter, "single-chapter", false, "Only show works with a single chapter.")
	flags.StringVar(&f.words, "words", "", `Word count, ex. "1000", "> 5000", "< 100", "1000-5000".`)
	flags.StringArrayVar(&f.fandoms, "fandom", nil, "A fandom name, may be repeated.")
	flags.StringVar(&f.rating, "rating", "", "One of: not-rated, general, teen, mature, explicit.")
	flags.StringArrayVar(&f.warnings, "warning", nil, "One of: choose-not-to-use, none, violence, death, noncon, underage. May be repeated.")
	flags.StringArrayVar(&f.categories, "category", nil, "One of: gen, f/m, m/m, f/f, multi, other. May be repeated.")
	flags.StringArrayVar(&f.characters, "character", nil, "A character name, may be repeated.")
	flags.StringArrayVar(&f.relationships, "relationship", nil, "A relationship, may be repeated.")
	flags.StringArrayVar(&f.tags, "tag", nil, "An additional tag, may be repeated.")
	flags.StringVar(&f.hits, "hits", "", "Hit count, same format as --words.")
	flags.StringVar(&f.kudos, "kudos", "", "Kudos count, same format as --words.")
	flags.StringVar(&f.comments, "comments", "", "Comment count, same format as --words.")
	flags.StringVar(&f.bookmarks, "bookmarks", "", "Bookmark count, same format as --words.")
	flags.StringVar(&f.sort, "sort", "best-match", "One of: best-match, creator, title, date-posted, date-updated, word-count, hits, kudos, comments, bookmarks.")
	flags.BoolVar(&f.ascending, "ascending", false, "Sort in ascending order instead of descending order.")
	return f
}

// query turns the flags into a query, it fails on the first flag that
// cannot be parsed.
func (f *filterFlags) query() (ao3.Query, error) {
	q := ao3.NewQuery().
		WithAnyField(f.anyField).
		WithTitle(f.title).
		WithAuthors(f.authors...).
		WithSingleChapter(f.singleChapter).
		WithFandoms(f.fandoms...).
		WithCharacters(f.characters...).
		WithRelationships(f.relationships...).
		WithAdditionalTags(f.tags...)

	date, err := ao3.ParseDateRange(f.date)
	if err != nil {
		return ao3.Query{}, fmt.Errorf("--date: %w", err)
	}
	q = q.WithDateRange(date)

	switch f.completion {
	case "", "any":
		q = q.IgnoreCompletionStatus()
	case "complete":
		q = q.OnlyCompleted()
	case "incomplete":
		q = q.OnlyIncomplete()
	default:
		return ao3.Query{}, fmt.Errorf("--completion: unknown value %q", f.completion)
	}

	switch f.crossover {
	case "", "any":
		q = q.IgnoreCrossoverStatus()
	case "only":
		q = q.OnlyCrossovers()
	case "exclude":
		q = q.OnlyNonCrossovers()
	default:
		return ao3.Query{}, fmt.Errorf("--crossover: unknown value %q", f.crossover)
	}

	if f.rating != "" {
		rating, err := ao3.ParseRating(f.rating)
		if err != nil {
			return ao3.Query{}, fmt.Errorf("--rating: %w", err)
		}
		q = q.WithRating(rating)
	}

	for _, name := range f.warnings {
		warning, err := ao3.ParseArchiveWarning(name)
		if err != nil {
			return ao3.Query{}, fmt.Errorf("--warning: %w", err)
		}
		q = q.AddArchiveWarning(warning)
	}

	for _, name := range f.categories {
		category, err := ao3.ParseCategory(name)
		if err != nil {
			return ao3.Query{}, fmt.Errorf("--category: %w", err)
		}
		q = q.AddCategory(category)
	}

	counts := []struct {
		flag  string
		value string
		set   func(ao3.Query, ao3.NumberRange) ao3.Query
	}{
		{flag: "--words", value: f.words, set: ao3.Query.WithWordCount},
		{flag: "--hits", value: f.hits, set: ao3.Query.WithHits},
		{flag: "--kudos", value: f.kudos, set: ao3.Query.WithKudos},
		{flag: "--comments", value: f.comments, set: ao3.Query.WithComments},
		{flag: "--bookmarks", value: f.bookmarks, set: ao3.Query.WithBookmarks},
	}
	for _, count := range counts {
		r, err := ao3.ParseNumberRange(count.value)
		if err != nil {
			return ao3.Query{}, fmt.Errorf("%s: %w", count.flag, err)
		}
		q = count.set(q, r)
	}

	column, err := ao3.ParseSortColumn(f.sort)
	if err != nil {
		return ao3.Query{}, fmt.Errorf("--sort: %w", err)
	}
	q = q.WithSortColumn(column)

	if f.ascending {
		q = q.WithSortDirection(ao3.SortAscending)
	}
	return q, nil
}
