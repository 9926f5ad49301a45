package scraper

import "fmt"

// FetchError reports a network failure or a non-2xx response from an
// upstream HTTP endpoint.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status code %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ScrapeError means the page was fetched but does not have the expected
// structure.
type ScrapeError struct {
	Reason string
	Err    error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scrape: %s: %v", e.Reason, e.Err)
	}
	return "scrape: " + e.Reason
}

func (e *ScrapeError) Unwrap() error { return e.Err }

// ParseRowError describes a table row that could not be turned into a Song.
// The scraper skips such rows; it never returns this error to callers.
type ParseRowError struct {
	Row    int
	Reason string
}

func (e *ParseRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}
