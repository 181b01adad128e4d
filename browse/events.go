package browse

import (
	"github.com/s0up4200/marquee/tmdb"
)

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// RawTermChanged records the unsettled contents of the search field
type RawTermChanged struct {
	Term string
}

// SettledTermChanged carries the search term after the debounce window
type SettledTermChanged struct {
	Term string
}

// CategorySelected switches the active category and leaves search mode
type CategorySelected struct {
	Category tmdb.Category
}

// RetryRequested re-issues the fetch backing the current mode
type RetryRequested struct{}

// BulkRequested starts a load of every category
type BulkRequested struct{}

// debounceFired is a settled value coming from the debouncer. It is dropped
// when the raw term has moved on, e.g. after a category selection.
type debounceFired struct {
	Term string
}

// SearchResult is the classified outcome of one search request
type SearchResult struct {
	Ticket  Ticket
	Term    string
	Movies  []tmdb.Movie
	Outcome tmdb.Outcome
	Failure *tmdb.Failure
}

// CategoryResult is the classified outcome of one category request
type CategoryResult struct {
	Ticket   Ticket
	Category tmdb.Category
	Movies   []tmdb.Movie
	Outcome  tmdb.Outcome
	Failure  *tmdb.Failure
}

// BulkResult joins one CategoryResult per category, indexed by category
type BulkResult struct {
	Ticket Ticket
	Slots  [tmdb.NumCategories]CategoryResult
}

// Failed returns the categories whose slot failed, in category order
func (r BulkResult) Failed() []tmdb.Category {
	var failed []tmdb.Category
	for _, slot := range r.Slots {
		if slot.Outcome == tmdb.OutcomeFailed {
			failed = append(failed, slot.Category)
		}
	}
	return failed
}

func (RawTermChanged) isEvent()     {}
func (SettledTermChanged) isEvent() {}
func (CategorySelected) isEvent()   {}
func (RetryRequested) isEvent()     {}
func (BulkRequested) isEvent()      {}
func (debounceFired) isEvent()      {}
func (SearchResult) isEvent()       {}
func (CategoryResult) isEvent()     {}
func (BulkResult) isEvent()         {}

// Command is a fetch Reduce asks its owner to perform
type Command interface {
	isCommand()
}

// FetchSearch requests a search for Term
type FetchSearch struct {
	Ticket Ticket
	Term   string
}

// FetchCategory requests a single refresh of Category
type FetchCategory struct {
	Ticket   Ticket
	Category tmdb.Category
}

// FetchAll requests the bulk load of every category
type FetchAll struct {
	Ticket Ticket
}

func (FetchSearch) isCommand()   {}
func (FetchCategory) isCommand() {}
func (FetchAll) isCommand()      {}
