package schedule

import "fmt"

// FetchError reports a failed retrieval of the schedule page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a document whose structure is not a schedule page at all.
// Malformed individual entries are skipped instead, see Stats.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "parse schedule: " + e.Reason }
