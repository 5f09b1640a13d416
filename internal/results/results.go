// Package results holds the page of contacts currently on screen and the
// pagination arithmetic derived from the reported total.
package results

import (
	"datahunt/internal/contacts"
	"datahunt/internal/filters"
)

// PageState tracks the current page of a search. CurrentPage is 1-based.
type PageState struct {
	CurrentPage int
	PerPage     int
	Total       int
}

// NewPageState starts on page 1 with the fixed page size and no results.
func NewPageState() PageState {
	return PageState{CurrentPage: 1, PerPage: filters.ResultsPerPage}
}

// TotalPages is ceil(Total / PerPage); zero when there are no results.
func (p PageState) TotalPages() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Offset is the index of the first result on the current page.
func (p PageState) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

// Pagination is the window the backend should return for the current page.
func (p PageState) Pagination() filters.Pagination {
	return filters.Pagination{Limit: p.PerPage, Offset: p.Offset()}
}

// CanGoTo reports whether n is a page that exists.
func (p PageState) CanGoTo(n int) bool {
	return n >= 1 && n <= p.TotalPages()
}

// HasPrev and HasNext drive the enabled state of the pager.
func (p PageState) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p PageState) HasNext() bool {
	total := p.TotalPages()
	return total > 0 && p.CurrentPage != total
}

// DisplayTotalPages never reports fewer than one page so the header reads
// "Page 1 of 1" on an empty result.
func (p PageState) DisplayTotalPages() int {
	return max(p.TotalPages(), 1)
}

// Store is the result of the last completed search.
type Store struct {
	Items []contacts.Contact
	// Total is the count pagination is based on. When the backend omits it,
	// Total falls back to len(Items) and TotalReported is false; page counts
	// are then only page-local.
	Total         int
	TotalReported bool
	// Visible is false while a search is in flight.
	Visible bool
}

// Empty reports whether the store holds no contacts.
func (s Store) Empty() bool {
	return len(s.Items) == 0
}
