package ao3

import (
	"ao3search/internal/components/assert"
	"fmt"
	"strconv"
	"strings"
)

// Period is the unit of time a DateRange is counted in.
type Period int

const (
	Hours Period = iota + 1
	Days
	Weeks
	Months
	Years
)

func (p Period) String() string {
	switch p {
	case Hours:
		return "hours"
	case Days:
		return "days"
	case Weeks:
		return "weeks"
	case Months:
		return "months"
	case Years:
		return "years"
	}
	assert.Unreachable("unknown period %d", int(p))
	return ""
}

// ParsePeriod accepts both the singular and plural unit names.
func ParsePeriod(s string) (Period, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "hour":
		return Hours, nil
	case "day":
		return Days, nil
	case "week":
		return Weeks, nil
	case "month":
		return Months, nil
	case "year":
		return Years, nil
	}
	return 0, fmt.Errorf("unknown period %q", s)
}

type rangeKind int

const (
	rangeNone rangeKind = iota
	rangeExactly
	rangeMoreThan
	rangeLessThan
	rangeBetween
)

// NumberRange filters on a count (words, hits, kudos, comments, bookmarks).
// The zero value matches anything and is never included in a query.
type NumberRange struct {
	kind rangeKind
	from uint
	to   uint
}

func Exactly(n uint) NumberRange {
	return NumberRange{kind: rangeExactly, from: n}
}

func MoreThan(n uint) NumberRange {
	return NumberRange{kind: rangeMoreThan, from: n}
}

func LessThan(n uint) NumberRange {
	return NumberRange{kind: rangeLessThan, from: n}
}

// Between does not check that from <= to, an inverted range is sent as-is.
func Between(from, to uint) NumberRange {
	return NumberRange{kind: rangeBetween, from: from, to: to}
}

func (r NumberRange) QueryValue() string {
	switch r.kind {
	case rangeNone:
		return ""
	case rangeExactly:
		return strconv.FormatUint(uint64(r.from), 10)
	case rangeMoreThan:
		return fmt.Sprintf("> %d", r.from)
	case rangeLessThan:
		return fmt.Sprintf("< %d", r.from)
	case rangeBetween:
		return fmt.Sprintf("%d-%d", r.from, r.to)
	}
	assert.Unreachable("unknown range kind %d", int(r.kind))
	return ""
}

func (r NumberRange) IsIncluded() bool {
	return r.kind != rangeNone
}

func (r NumberRange) String() string {
	switch r.kind {
	case rangeNone:
		return "None"
	case rangeExactly:
		return fmt.Sprintf("Exactly %d", r.from)
	case rangeMoreThan:
		return fmt.Sprintf("More than %d", r.from)
	case rangeLessThan:
		return fmt.Sprintf("Less than %d", r.from)
	case rangeBetween:
		return fmt.Sprintf("Between %d and %d", r.from, r.to)
	}
	assert.Unreachable("unknown range kind %d", int(r.kind))
	return ""
}

// DateRange filters on the date a work was last updated (or posted if it was
// never updated), relative to today. The zero value is never included in a query.
type DateRange struct {
	kind   rangeKind
	from   uint
	to     uint
	period Period
}

func ExactlyAgo(n uint, period Period) DateRange {
	return DateRange{kind: rangeExactly, from: n, period: period}
}

func MoreThanAgo(n uint, period Period) DateRange {
	return DateRange{kind: rangeMoreThan, from: n, period: period}
}

func LessThanAgo(n uint, period Period) DateRange {
	return DateRange{kind: rangeLessThan, from: n, period: period}
}

// BetweenAgo does not check that from <= to, an inverted range is sent as-is.
func BetweenAgo(from, to uint, period Period) DateRange {
	return DateRange{kind: rangeBetween, from: from, to: to, period: period}
}

// QueryValue writes the range the way the search form expects it, note that
// "between" has no trailing "ago".
func (r DateRange) QueryValue() string {
	switch r.kind {
	case rangeNone:
		return ""
	case rangeExactly:
		return fmt.Sprintf("%d %s ago", r.from, r.period)
	case rangeMoreThan:
		return fmt.Sprintf("> %d %s ago", r.from, r.period)
	case rangeLessThan:
		return fmt.Sprintf("< %d %s ago", r.from, r.period)
	case rangeBetween:
		return fmt.Sprintf("%d-%d %s", r.from, r.to, r.period)
	}
	assert.Unreachable("unknown range kind %d", int(r.kind))
	return ""
}

func (r DateRange) IsIncluded() bool {
	return r.kind != rangeNone
}

func (r DateRange) String() string {
	switch r.kind {
	case rangeNone:
		return "None"
	case rangeExactly:
		return fmt.Sprintf("Exactly %d %s ago", r.from, r.period)
	case rangeMoreThan:
		return fmt.Sprintf("More than %d %s ago", r.from, r.period)
	case rangeLessThan:
		return fmt.Sprintf("Less than %d %s ago", r.from, r.period)
	case rangeBetween:
		return fmt.Sprintf("Between %d and %d %s ago", r.from, r.to, r.period)
	}
	assert.Unreachable("unknown range kind %d", int(r.kind))
	return ""
}

func parseUint(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// ParseNumberRange reads the wire grammar back into a NumberRange:
// "7", "> 7", "< 7", "7-21". An empty string is the zero range.
func ParseNumberRange(s string) (NumberRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NumberRange{}, nil
	}

	parse := func(kind rangeKind, body string) (NumberRange, error) {
		n, err := parseUint(body)
		if err != nil {
			return NumberRange{}, fmt.Errorf("parse number range %q: %w", s, err)
		}
		return NumberRange{kind: kind, from: n}, nil
	}

	switch {
	case strings.HasPrefix(s, ">"):
		return parse(rangeMoreThan, s[1:])
	case strings.HasPrefix(s, "<"):
		return parse(rangeLessThan, s[1:])
	}

	from, to, isBetween := strings.Cut(s, "-")
	if !isBetween {
		return parse(rangeExactly, s)
	}
	lo, err := parseUint(from)
	if err != nil {
		return NumberRange{}, fmt.Errorf("parse number range %q: %w", s, err)
	}
	hi, err := parseUint(to)
	if err != nil {
		return NumberRange{}, fmt.Errorf("parse number range %q: %w", s, err)
	}
	return Between(lo, hi), nil
}

// ParseDateRange reads the wire grammar back into a DateRange:
// "7 days ago", "> 8 weeks ago", "< 7 days", "13-21 months". The trailing
// "ago" is optional. An empty string is the zero range.
func ParseDateRange(s string) (DateRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateRange{}, nil
	}

	body := strings.TrimSpace(strings.TrimSuffix(s, "ago"))
	idx := strings.LastIndexByte(body, ' ')
	if idx < 0 {
		return DateRange{}, fmt.Errorf("parse date range %q: missing period", s)
	}
	period, err := ParsePeriod(body[idx+1:])
	if err != nil {
		return DateRange{}, fmt.Errorf("parse date range %q: %w", s, err)
	}
	count, err := ParseNumberRange(body[:idx])
	if err != nil {
		return DateRange{}, fmt.Errorf("parse date range %q: %w", s, err)
	}
	if !count.IsIncluded() {
		return DateRange{}, fmt.Errorf("parse date range %q: missing amount", s)
	}

	return DateRange{
		kind:   count.kind,
		from:   count.from,
		to:     count.to,
		period: period,
	}, nil
}
