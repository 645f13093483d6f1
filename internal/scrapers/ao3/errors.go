package ao3

import "fmt"

// NotFoundError is returned when a landmark the extractor depends on is
// missing from the page.
type NotFoundError struct {
	Landmark string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find: %s", e.Landmark)
}

// MalformedError is returned when a landmark is present but its content does
// not have the expected shape.
type MalformedError struct {
	Landmark string
	Value    string
	Err      error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s %q: %s", e.Landmark, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed %s %q", e.Landmark, e.Value)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// RecordError wraps the failure of a single record on a results page.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the search page responds with a non 2xx status.
type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("get %s: unexpected status %d", e.Url, e.StatusCode)
}
