package ao3

import "time"

// Work is a single search result.
type Work struct {
	// Id is the numeric work id kept in its textual form.
	Id          string
	Url         string
	Title       string
	Authors     []string
	Fandoms     []string
	Date        time.Time
	WordCount   int64
	IsComplete  bool
	IsCrossover bool
	// Rating is nil when the results page did not label the work with a
	// known rating.
	Rating *Rating
}
