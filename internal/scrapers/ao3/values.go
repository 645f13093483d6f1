package ao3

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// QueryValue is implemented by every filter that is written as a single
// `work_search[<key>]=<value>` pair.
//
// QueryValue must only be called after IsIncluded returned true, the value
// of an excluded filter has no meaning on the wire.
type QueryValue interface {
	fmt.Stringer
	QueryValue() string
	IsIncluded() bool
}

// MultiQueryValue is implemented by filters that are written as a repeated
// `work_search[<key>][]=<value>` pair, once per element.
type MultiQueryValue interface {
	fmt.Stringer
	QueryValues() []string
	IsIncluded() bool
}

// Text is a free text filter, it is only included when it is non-empty.
type Text string

func (t Text) QueryValue() string {
	return string(t)
}

func (t Text) IsIncluded() bool {
	return t != ""
}

func (t Text) String() string {
	return string(t)
}

// Toggle is a boolean filter, it is always included.
type Toggle bool

func (t Toggle) QueryValue() string {
	if t {
		return "1"
	}
	return "0"
}

func (t Toggle) IsIncluded() bool {
	return true
}

func (t Toggle) String() string {
	if t {
		return "Yes"
	}
	return "No"
}

// MultiString is a list of names sent as one comma separated value.
type MultiString []string

func (m MultiString) QueryValue() string {
	return strings.Join(m, ",")
}

func (m MultiString) IsIncluded() bool {
	return len(m) > 0
}

func (m MultiString) String() string {
	return fmt.Sprintf("[ %s ]", strings.Join(m, ", "))
}

// MultiSelect is a list of coded values sent as one array parameter per element.
type MultiSelect[T QueryValue] []T

func (m MultiSelect[T]) QueryValues() []string {
	return lo.Map(m, func(v T, _ int) string {
		return v.QueryValue()
	})
}

func (m MultiSelect[T]) IsIncluded() bool {
	return len(m) > 0
}

func (m MultiSelect[T]) String() string {
	names := lo.Map(m, func(v T, _ int) string {
		return v.String()
	})
	return fmt.Sprintf("[ %s ]", strings.Join(names, ", "))
}
