package phylotext

import "context"

// Page is the stored article text of one family.
type Page struct {
	Family  string
	Content string
}

// PageStore persists one page per family.
type PageStore interface {
	// Save writes the page, replacing an existing one atomically.
	Save(ctx context.Context, page *Page) error

	// Has reports whether a page is already stored for the family.
	Has(family string) bool
}

// FetchFailure records a family whose content could not be retrieved.
// Ordinal is the 1-based position of the family in the fetch order.
type FetchFailure struct {
	Ordinal int
	Family  string
	Err     error
}

// FetchProgress reports progress while gathering pages.
type FetchProgress struct {
	Family    string
	Completed int
	Total     int
	Skipped   bool
	Error     error
}

// FetchProgressFunc is called as families are processed.
type FetchProgressFunc func(FetchProgress)
