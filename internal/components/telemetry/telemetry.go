package telemetry

import (
	"ao3search/internal/components/assert"
	"fmt"
)

// API is an abstraction over logging/metrics.
// This allows for assertions and tests for working logging/metrics to exist.
type API interface {
	// ReportBroken reports a component that has broken in a way that should be addressed.
	//
	// The `id` should indicate what **component** broke, not what specific piece of the
	// implementation broke, ex. `parser.parse-work`, not `parser.parse-work.find-title`.
	// Use a param or wrap the error with fmt.Errorf to disambiguate further.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) use underscores for large components
	// 3) use dashes for methods part of a larger component
	ReportBroken(id string, params ...any)

	// ReportWarning reports a scenario that does not necessarily indicate brokenness, but may be subject to investigation
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports some debug information that will be ignored in production
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of a specific event at the current time, these counts should
	// not be summed but interpreted as points of data over time.
	ReportCount(id string, count int64)
}

// ScopedAPI is a telemetry API that attaches a namespace for a given API, kind of like creating a
// "sub" logger using things like log.New(), in which you can define the prefix for the logs.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	assert.NotEmptyStr(namespace)
	assert.NotNil(inner)
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}

// Report is a single captured call made against a RecordingAPI.
type Report struct {
	Kind   string
	Id     string
	Params []any
}

// RecordingAPI keeps every report in memory, it is meant to be used in tests
// to assert that a component reported what it should have.
type RecordingAPI struct {
	Reports []Report
}

func (r *RecordingAPI) ReportBroken(id string, params ...any) {
	r.Reports = append(r.Reports, Report{Kind: "broken", Id: id, Params: params})
}

func (r *RecordingAPI) ReportWarning(id string, params ...any) {
	r.Reports = append(r.Reports, Report{Kind: "warning", Id: id, Params: params})
}

func (r *RecordingAPI) ReportDebug(msg string, params ...any) {
	r.Reports = append(r.Reports, Report{Kind: "debug", Id: msg, Params: params})
}

func (r *RecordingAPI) ReportCount(id string, count int64) {
	r.Reports = append(r.Reports, Report{Kind: "count", Id: id, Params: []any{count}})
}

// Kind returns the reports of a given kind ("broken", "warning", "debug", "count").
func (r *RecordingAPI) Kind(kind string) []Report {
	var out []Report
	for _, rep := range r.Reports {
		if rep.Kind == kind {
			out = append(out, rep)
		}
	}
	return out
}
