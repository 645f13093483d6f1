package ao3

import (
	"ao3search/internal/components/assert"
	"ao3search/lib/textutil"
	"fmt"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/samber/lo"
)

// Rating is the content rating filter, the numeric values are the codes the
// search form uses.
type Rating int

const (
	RatingNone      Rating = 0
	RatingNotRated  Rating = 9
	RatingGeneral   Rating = 10
	RatingTeenAndUp Rating = 11
	RatingMature    Rating = 12
	RatingExplicit  Rating = 13
)

var AllRatings = []Rating{
	RatingNotRated,
	RatingGeneral,
	RatingTeenAndUp,
	RatingMature,
	RatingExplicit,
}

func (r Rating) QueryValue() string {
	if r != RatingNone && !lo.Contains(AllRatings, r) {
		assert.Unreachable("unknown rating code %d", int(r))
	}
	return strconv.Itoa(int(r))
}

func (r Rating) IsIncluded() bool {
	return r != RatingNone
}

func (r Rating) String() string {
	switch r {
	case RatingNone:
		return "None"
	case RatingNotRated:
		return "Work is not rated"
	case RatingGeneral:
		return "For General Audiences"
	case RatingTeenAndUp:
		return "For Teens And Up"
	case RatingMature:
		return "For Mature Audiences"
	case RatingExplicit:
		return "Work is Explicit"
	}
	assert.Unreachable("unknown rating code %d", int(r))
	return ""
}

// Title is the label the results page puts on the rating symbol of a work.
func (r Rating) Title() string {
	switch r {
	case RatingNone:
		return ""
	case RatingNotRated:
		return "Not Rated"
	case RatingGeneral:
		return "General Audiences"
	case RatingTeenAndUp:
		return "Teen And Up Audiences"
	case RatingMature:
		return "Mature"
	case RatingExplicit:
		return "Explicit"
	}
	assert.Unreachable("unknown rating code %d", int(r))
	return ""
}

func (r Rating) keywords() []string {
	switch r {
	case RatingNotRated:
		return []string{"not-rated", "unrated"}
	case RatingGeneral:
		return []string{"general", "g"}
	case RatingTeenAndUp:
		return []string{"teen", "t"}
	case RatingMature:
		return []string{"mature", "m"}
	case RatingExplicit:
		return []string{"explicit", "e"}
	}
	return nil
}

// ParseRating accepts a page title ("Teen And Up Audiences"), a short keyword
// ("teen") or a numeric code ("11").
func ParseRating(s string) (Rating, error) {
	return lookup("rating", s, AllRatings, func(r Rating) []string {
		return append(r.keywords(), r.Title(), r.QueryValue())
	})
}

// ArchiveWarning is a warning filter, every warning is included when selected.
type ArchiveWarning int

const (
	WarningCreatorChoseNotToUse ArchiveWarning = 14
	WarningNoneApply            ArchiveWarning = 16
	WarningViolence             ArchiveWarning = 17
	WarningMajorCharacterDeath  ArchiveWarning = 18
	WarningRapeNonCon           ArchiveWarning = 19
	WarningUnderage             ArchiveWarning = 20
)

var AllArchiveWarnings = []ArchiveWarning{
	WarningCreatorChoseNotToUse,
	WarningNoneApply,
	WarningViolence,
	WarningMajorCharacterDeath,
	WarningRapeNonCon,
	WarningUnderage,
}

func (w ArchiveWarning) QueryValue() string {
	if !lo.Contains(AllArchiveWarnings, w) {
		assert.Unreachable("unknown archive warning code %d", int(w))
	}
	return strconv.Itoa(int(w))
}

func (w ArchiveWarning) IsIncluded() bool {
	return true
}

func (w ArchiveWarning) String() string {
	switch w {
	case WarningCreatorChoseNotToUse:
		return "Creator Chose Not To Use Archive Warnings"
	case WarningNoneApply:
		return "No Archive Warnings Apply"
	case WarningViolence:
		return "Graphic Depiction Of Violence"
	case WarningMajorCharacterDeath:
		return "Major Character Death"
	case WarningRapeNonCon:
		return "Rape/Non-Con"
	case WarningUnderage:
		return "Underage"
	}
	assert.Unreachable("unknown archive warning code %d", int(w))
	return ""
}

func (w ArchiveWarning) keywords() []string {
	switch w {
	case WarningCreatorChoseNotToUse:
		return []string{"choose-not-to-use", "cntw"}
	case WarningNoneApply:
		return []string{"none", "no-warnings"}
	case WarningViolence:
		return []string{"violence"}
	case WarningMajorCharacterDeath:
		return []string{"death", "mcd"}
	case WarningRapeNonCon:
		return []string{"noncon", "rape"}
	case WarningUnderage:
		return []string{"underage"}
	}
	return nil
}

func ParseArchiveWarning(s string) (ArchiveWarning, error) {
	return lookup("archive warning", s, AllArchiveWarnings, func(w ArchiveWarning) []string {
		return append(w.keywords(), w.String(), w.QueryValue())
	})
}

// Category is the relationship category filter.
type Category int

const (
	CategoryGen   Category = 21
	CategoryFM    Category = 22
	CategoryMM    Category = 23
	CategoryOther Category = 24
	CategoryFF    Category = 116
	CategoryMulti Category = 2246
)

var AllCategories = []Category{
	CategoryGen,
	CategoryFM,
	CategoryMM,
	CategoryOther,
	CategoryFF,
	CategoryMulti,
}

func (c Category) QueryValue() string {
	if !lo.Contains(AllCategories, c) {
		assert.Unreachable("unknown category code %d", int(c))
	}
	return strconv.Itoa(int(c))
}

func (c Category) IsIncluded() bool {
	return true
}

func (c Category) String() string {
	switch c {
	case CategoryGen:
		return "Gen"
	case CategoryFM:
		return "F/M"
	case CategoryMM:
		return "M/M"
	case CategoryOther:
		return "Other"
	case CategoryFF:
		return "F/F"
	case CategoryMulti:
		return "Multi"
	}
	assert.Unreachable("unknown category code %d", int(c))
	return ""
}

func ParseCategory(s string) (Category, error) {
	return lookup("category", s, AllCategories, func(c Category) []string {
		name := c.String()
		return []string{name, strings.ReplaceAll(name, "/", ""), c.QueryValue()}
	})
}

// CompletionStatus filters on whether a work is marked complete.
type CompletionStatus int

const (
	CompletionIgnore CompletionStatus = iota
	CompletionOnlyCompleted
	CompletionOnlyIncomplete
)

func (c CompletionStatus) QueryValue() string {
	switch c {
	case CompletionIgnore:
		return ""
	case CompletionOnlyCompleted:
		return "T"
	case CompletionOnlyIncomplete:
		return "F"
	}
	assert.Unreachable("unknown completion status %d", int(c))
	return ""
}

func (c CompletionStatus) IsIncluded() bool {
	return c != CompletionIgnore
}

func (c CompletionStatus) String() string {
	switch c {
	case CompletionIgnore:
		return "Don't care"
	case CompletionOnlyCompleted:
		return "Only allow completed"
	case CompletionOnlyIncomplete:
		return "Only allow incomplete"
	}
	assert.Unreachable("unknown completion status %d", int(c))
	return ""
}

// CrossoverStatus filters on whether a work spans more than one fandom.
type CrossoverStatus int

const (
	CrossoverIgnore CrossoverStatus = iota
	CrossoverOnly
	CrossoverExclude
)

func (c CrossoverStatus) QueryValue() string {
	switch c {
	case CrossoverIgnore:
		return ""
	case CrossoverOnly:
		return "T"
	case CrossoverExclude:
		return "F"
	}
	assert.Unreachable("unknown crossover status %d", int(c))
	return ""
}

func (c CrossoverStatus) IsIncluded() bool {
	return c != CrossoverIgnore
}

func (c CrossoverStatus) String() string {
	switch c {
	case CrossoverIgnore:
		return "Don't care"
	case CrossoverOnly:
		return "Only allow crossovers"
	case CrossoverExclude:
		return "Only allow non crossovers"
	}
	assert.Unreachable("unknown crossover status %d", int(c))
	return ""
}

// SortColumn is the field results are ordered by, it is always sent.
type SortColumn int

const (
	SortBestMatch SortColumn = iota
	SortCreator
	SortTitle
	SortDatePosted
	SortDateUpdated
	SortWordCount
	SortHits
	SortKudos
	SortComments
	SortBookmarks
)

var AllSortColumns = []SortColumn{
	SortBestMatch,
	SortCreator,
	SortTitle,
	SortDatePosted,
	SortDateUpdated,
	SortWordCount,
	SortHits,
	SortKudos,
	SortComments,
	SortBookmarks,
}

func (s SortColumn) QueryValue() string {
	switch s {
	case SortBestMatch:
		return "_score"
	case SortCreator:
		return "authors_to_sort_on"
	case SortTitle:
		return "title_to_sort_on"
	case SortDatePosted:
		return "created_at"
	case SortDateUpdated:
		return "revised_at"
	case SortWordCount:
		return "word_count"
	case SortHits:
		return "hits"
	case SortKudos:
		return "kudos_count"
	case SortComments:
		return "comments_count"
	case SortBookmarks:
		return "bookmarks_count"
	}
	assert.Unreachable("unknown sort column %d", int(s))
	return ""
}

func (s SortColumn) IsIncluded() bool {
	return true
}

func (s SortColumn) String() string {
	switch s {
	case SortBestMatch:
		return "Best Match"
	case SortCreator:
		return "Creator"
	case SortTitle:
		return "Title"
	case SortDatePosted:
		return "Date Posted"
	case SortDateUpdated:
		return "Date Updated"
	case SortWordCount:
		return "Word Count"
	case SortHits:
		return "Hits"
	case SortKudos:
		return "Kudos"
	case SortComments:
		return "Comments"
	case SortBookmarks:
		return "Bookmarks"
	}
	assert.Unreachable("unknown sort column %d", int(s))
	return ""
}

// ParseSortColumn accepts the display name with spaces or dashes
// ("date-updated") or the value sent on the wire ("revised_at").
func ParseSortColumn(s string) (SortColumn, error) {
	return lookup("sort column", s, AllSortColumns, func(c SortColumn) []string {
		name := c.String()
		return []string{name, strings.ReplaceAll(name, " ", "-"), c.QueryValue()}
	})
}

// SortDirection is the order results are sorted in, it is always sent.
type SortDirection int

const (
	SortDescending SortDirection = iota
	SortAscending
)

func (d SortDirection) QueryValue() string {
	switch d {
	case SortDescending:
		return "desc"
	case SortAscending:
		return "asc"
	}
	assert.Unreachable("unknown sort direction %d", int(d))
	return ""
}

func (d SortDirection) IsIncluded() bool {
	return true
}

func (d SortDirection) String() string {
	switch d {
	case SortDescending:
		return "Descending order"
	case SortAscending:
		return "Ascending order"
	}
	assert.Unreachable("unknown sort direction %d", int(d))
	return ""
}

func ParseSortDirection(s string) (SortDirection, error) {
	return lookup("sort direction", s, []SortDirection{SortDescending, SortAscending}, func(d SortDirection) []string {
		if d == SortAscending {
			return []string{"asc", "ascending"}
		}
		return []string{"desc", "descending"}
	})
}

// lookup finds the value in all with a name matching s, ignoring case and
// whitespace.
func lookup[T any](kind, s string, all []T, names func(T) []string) (T, error) {
	value, ok := lo.Find(all, func(v T) bool {
		return textutil.MatchName(s, names(v))
	})
	if !ok {
		var zero T
		suggestion := closestName(s, lo.FlatMap(all, func(v T, _ int) []string {
			return names(v)
		}))
		if suggestion == "" {
			return zero, fmt.Errorf("unknown %s %q", kind, s)
		}
		return zero, fmt.Errorf("unknown %s %q, did you mean %q?", kind, s, suggestion)
	}
	return value, nil
}

// closestName returns the candidate most similar to s, or an empty string
// when none of them is similar enough to be a likely typo.
func closestName(s string, candidates []string) string {
	best := ""
	bestSimilarity := 0.85
	for _, candidate := range candidates {
		similarity := matchr.JaroWinkler(textutil.NormalizeName(s), textutil.NormalizeName(candidate), false)
		if similarity > bestSimilarity {
			best = candidate
			bestSimilarity = similarity
		}
	}
	return best
}
