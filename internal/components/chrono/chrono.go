package chrono

import "time"

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now().UTC()
}

// FixedTime always returns the same instant, it is used to pin the clock in tests.
type FixedTime struct {
	At time.Time
}

func (f FixedTime) Now() time.Time {
	return f.At
}
